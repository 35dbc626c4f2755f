package seed

type fakePerson struct {
	GivenName  string
	FamilyName string
	Location   string
}

var fakePeople = []fakePerson{
	{GivenName: "Ava", FamilyName: "Williams", Location: "Sukkur"},
	{GivenName: "Liam", FamilyName: "Johnson", Location: "Hyderabad"},
	{GivenName: "Noah", FamilyName: "Brown", Location: "Karachi"},
	{GivenName: "Mia", FamilyName: "Davis", Location: "Larkana"},
	{GivenName: "Elijah", FamilyName: "Garcia", Location: "Dadu"},
	{GivenName: "Olivia", FamilyName: "Miller", Location: "Jacobabad"},
	{GivenName: "Ethan", FamilyName: "Moore", Location: "Nawabshah"},
	{GivenName: "Sophia", FamilyName: "Taylor", Location: "Thatta"},
	{GivenName: "Amina", FamilyName: "Khan", Location: "Quetta"},
	{GivenName: "Bilal", FamilyName: "Ahmed", Location: "Multan"},
	{GivenName: "Sara", FamilyName: "Malik", Location: "Swat"},
	{GivenName: "Omar", FamilyName: "Siddiqui", Location: "Peshawar"},
}

var fakeOrganizations = []string{
	"Riverbend Community Fund",
	"Northside Relief Kitchen",
	"Open Hands Clinic",
	"Harbor Shelter Network",
	"Lantern Education Trust",
	"Clearwater Wells Project",
}

func (p fakePerson) fullName() string {
	return p.GivenName + " " + p.FamilyName
}

package generator

var names = []string{
	"Ala", "Tola", "Ewa", "Natalka", "Jan", "Franek", "Bartek", "Jerzy",
}

var surnames = []string{
	"Kot", "Mot", "Nowak", "Kowal", "Szklany", "Rad",
}

// emailDomain is the fixed domain of generated email addresses.
const emailDomain = "generator.com"

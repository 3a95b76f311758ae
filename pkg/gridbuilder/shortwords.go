package gridbuilder

// shortWordPool is the built-in 2-4 letter French vocabulary gap fill
// reaches for once the candidate pool runs out. Distinct from (but
// overlapping) the lexicon's DefaultFrenchFallback: this list exists
// purely to densify a grid, never to carry theme meaning.
var shortWordPool = []string{
	"DE", "LA", "LE", "EN", "UN", "SI", "OU", "ET", "IL", "ON",
	"CE", "SA", "SE", "NE", "NI", "MA", "TA", "MI", "DU", "AU",
	"LES", "DES", "UNE", "SON", "MON", "TON", "SES", "LUI", "EUX",
	"CAR", "AMI", "EAU", "FEU", "MER", "VIE", "ART", "TOI", "MOI",
	"AVEC", "SANS", "SOUS", "VERS", "CHEZ", "DANS", "MAIS", "PLUS",
	"TOUT", "BIEN", "LOIN", "CIEL", "PAIN", "LAIT", "VENT", "NUIT",
}

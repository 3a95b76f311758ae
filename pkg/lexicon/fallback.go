package lexicon

// DefaultFrenchFallback is the built-in gap-fill vocabulary used when no
// on-disk fallback word list is configured: common French function
// words and short nouns, organised by length.
var DefaultFrenchFallback = []string{
	// 2 letters
	"DE", "LA", "LE", "EN", "UN", "SI", "OU", "ET", "IL", "ON",
	"CE", "SA", "SE", "NE", "NI", "MA", "TA", "MI", "DU", "AU",
	// 3 letters
	"LES", "DES", "UNE", "SON", "MON", "TON", "SES", "NOS", "VOS",
	"LUI", "EUX", "CAR", "MAI", "BUT", "AMI", "EAU", "FEU", "MER",
	"VIE", "ART", "TOI", "MOI", "QUI", "DOS", "BON", "PAS", "PEU",
	// 4 letters
	"AVEC", "SANS", "SOUS", "VERS", "CHEZ", "DANS", "MAIS", "PLUS",
	"TOUT", "TOUS", "BIEN", "LOIN", "CIEL", "PAIN", "LAIT", "VENT",
	"NUIT", "JOUR", "ROSE", "PORT", "GARE", "VOIX", "ELLE", "TRES",
	// 5-6 letters
	"CHIEN", "CHATS", "FLEUR", "TABLE", "PORTE", "LIVRE", "ECOLE",
	"PLAGE", "MONDE", "TEMPS", "FORCE", "CHAMP", "ROUTE", "PLACE",
	"FORME", "TOUTE", "CLASSE",
}

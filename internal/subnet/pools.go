package subnet

// First-octet pools per country, loosely following real allocation blocks.
// Unmapped countries fall back to defaultFirstOctets.

var firstOctets = map[string][]int{
	"US": {12, 23, 24, 50, 63, 66, 68, 72, 98, 104, 173, 184, 199, 216},
	"CA": {24, 47, 70, 99, 142, 184, 192, 205},
	"GB": {25, 51, 77, 81, 86, 109, 151, 176, 185, 212},
	"DE": {46, 62, 77, 78, 84, 87, 91, 178, 185, 217},
	"FR": {37, 62, 77, 80, 82, 90, 92, 176, 185, 212},
	"NL": {62, 77, 80, 82, 84, 85, 145, 185, 213},
	"ES": {31, 77, 80, 81, 83, 88, 185, 212, 213},
	"IT": {2, 31, 62, 79, 80, 87, 93, 151, 185, 212},
	"PL": {5, 31, 46, 77, 83, 89, 91, 178, 185, 188},
	"SE": {2, 31, 62, 78, 81, 83, 90, 185, 194, 213},
	"BR": {131, 138, 143, 152, 168, 177, 179, 186, 187, 189, 200, 201},
	"MX": {131, 148, 177, 187, 189, 200, 201},
	"AU": {1, 14, 27, 49, 58, 60, 101, 110, 115, 203},
	"JP": {27, 43, 49, 58, 60, 101, 106, 110, 118, 126, 133, 153, 210},
	"IN": {14, 27, 43, 49, 59, 103, 106, 110, 115, 117, 122, 182, 203},
	"SG": {8, 27, 42, 101, 103, 116, 119, 129, 152, 203},
	"KR": {1, 14, 27, 58, 59, 61, 112, 114, 118, 121, 175, 211, 218},
}

var defaultFirstOctets = []int{5, 31, 37, 45, 46, 62, 77, 80, 83, 91, 103, 146, 154, 178, 185, 188, 193, 194, 195, 212}

package constants

// Phone digit window. Candidates outside the window are discarded, never
// truncated: 8 covers AU landlines without an area code, 12 covers
// 61-prefixed international mobiles.
const (
	PhoneMinDigits = 8
	PhoneMaxDigits = 12
)

// PhoneLabels are the labels scanned for candidate phone strings, in the
// order their matches are considered.
var PhoneLabels = []string{
	"Phone1",
	"Phone2",
	"Phone",
	"Mobile",
	"Contact No",
	"Home",
	"Work",
}

// ContactTypes is the fixed priority order for alternate-contact labels,
// most authoritative first. The first type present in a document becomes the
// primary alternate contact; the rest are retained in this order.
var ContactTypes = []string{
	"Site Contact",
	"Tenant",
	"Property Manager",
	"Real Estate",
	"Strata Manager",
}

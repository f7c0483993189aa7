package template

// Shipped builder templates. PO shapes, labels, and keywords follow each
// builder's purchase-order layout; the generic entry closes every cascade and
// catches documents from builders we have not seen yet.
//
// Priorities are sparse (10, 20, ...) so a config file can splice patterns
// between shipped ones without renumbering.

const moneyGroup = `([0-9][0-9,]*(?:\.[0-9]{1,2})?)`

var builtinDefinitions = []RawDefinition{
	{
		ID:           "ambrose",
		DisplayName:  "Ambrose Construct Group",
		POPattern:    `20\d{6}-\d{2}`,
		Keywords:     []string{"Ambrose Construct", "Ambrose Group"},
		EmailDomains: []string{"ambrosegroup.com.au", "ambroseconstruct.com.au"},
		Patterns: []RawFieldPattern{
			{Field: "po_number", Pattern: `(20\d{6}-\d{2})`, Priority: 10},
			{Field: "customer_name", Pattern: `(?im)^Insured Owner/Customer:[ \t]*(.+)$`, Priority: 10},
			{Field: "description_of_works", Pattern: `(?is)Description of Works:\s*(.+)`, Priority: 10},
			{Field: "dollar_value", Pattern: `(?im)^Total:[ \t]*\$?` + moneyGroup, Priority: 10},
			{Field: "supervisor_name", Pattern: `(?im)^Supervisor:[ \t]*(.+)$`, Priority: 10},
			{Field: "site_address", Pattern: `(?im)^Address:[ \t]*(.+)$`, Priority: 10},
		},
	},
	{
		ID:           "profile_build",
		DisplayName:  "Profile Build Group",
		POPattern:    `PBG-\d{5}-\d{5}`,
		Keywords:     []string{"Profile Build", "PBG"},
		EmailDomains: []string{"profilebuildgroup.com.au"},
		Patterns: []RawFieldPattern{
			{Field: "po_number", Pattern: `(PBG-\d{5}-\d{5})`, Priority: 10},
			{Field: "customer_name", Pattern: `(?im)^Client:[ \t]*(.+)$`, Priority: 10},
			{Field: "description_of_works", Pattern: `(?is)Scope of Works\s*/\s*Notes:\s*(.+)`, Priority: 10},
			{Field: "dollar_value", Pattern: `(?im)^Subtotal:[ \t]*\$?` + moneyGroup, Priority: 10},
			{Field: "supervisor_name", Pattern: `(?im)^Supervisor:[ \t]*(.+)$`, Priority: 10},
			{Field: "site_address", Pattern: `(?im)^Site Address:[ \t]*(.+)$`, Priority: 10},
		},
	},
	{
		ID:           "campbell",
		DisplayName:  "Campbell Construction",
		POPattern:    `CCC\d{5}-\d{5}`,
		Keywords:     []string{"Campbell Construction", "CCC"},
		EmailDomains: []string{"campbellconstruction.com.au"},
		Patterns: []RawFieldPattern{
			{Field: "po_number", Pattern: `(CCC\d{5}-\d{5})`, Priority: 10},
			{Field: "customer_name", Pattern: `(?im)^Customer:[ \t]*(.+)$`, Priority: 10},
			{Field: "description_of_works", Pattern: `(?is)Scope of Work:\s*(.+)`, Priority: 10},
			{Field: "dollar_value", Pattern: `(?im)^Subtotal[ \t]*\$` + moneyGroup, Priority: 10},
			{Field: "supervisor_name", Pattern: `(?im)^Contractor's Representative:[ \t]*(.+)$`, Priority: 10},
			{Field: "site_address", Pattern: `(?im)^Site Address:[ \t]*(.+)$`, Priority: 10},
		},
	},
	{
		ID:           "rizon",
		DisplayName:  "Rizon Group",
		POPattern:    `P\d{6}`,
		Keywords:     []string{"Rizon Group", "Rizon"},
		EmailDomains: []string{"rizongroup.com.au"},
		Patterns: []RawFieldPattern{
			{Field: "po_number", Pattern: `(P\d{6})`, Priority: 10},
			{Field: "customer_name", Pattern: `(?im)^Client\s*/\s*Site Details:[ \t]*(.+)$`, Priority: 10},
			{Field: "description_of_works", Pattern: `(?is)Scope of Works:\s*(.+)`, Priority: 10},
			{Field: "dollar_value", Pattern: `(?im)^Total:[ \t]*\$?` + moneyGroup, Priority: 10},
			{Field: "supervisor_name", Pattern: `(?im)^Supervisor:[ \t]*(.+)$`, Priority: 10},
			{Field: "site_address", Pattern: `(?im)^Address:[ \t]*(.+)$`, Priority: 10},
		},
	},
	{
		ID:           "australian_restoration",
		DisplayName:  "Australian Restoration Company",
		POPattern:    `PO\d{5}-[A-Z]{2}\d{2}-\d{3}`,
		Keywords:     []string{"Australian Restoration", "ARC"},
		EmailDomains: []string{"austrestoration.com.au"},
		Patterns: []RawFieldPattern{
			{Field: "po_number", Pattern: `(PO\d{5}-[A-Z]{2}\d{2}-\d{3})`, Priority: 10},
			{Field: "customer_name", Pattern: `(?im)^Customer Details:[ \t]*(.+)$`, Priority: 10},
			{Field: "description_of_works", Pattern: `(?is)Flooring Contractor Material:\s*(.+)`, Priority: 10},
			{Field: "dollar_value", Pattern: `(?im)^Sub Total[ \t]*\$` + moneyGroup, Priority: 10},
			{Field: "supervisor_name", Pattern: `(?im)^Project Manager:[ \t]*(.+)$`, Priority: 10},
			{Field: "site_address", Pattern: `(?im)^Site Address:[ \t]*(.+)$`, Priority: 10},
		},
	},
	{
		ID:           "townsend",
		DisplayName:  "Townsend Building Services",
		POPattern:    `TBS-\d{5}|Work Order \d+`,
		Keywords:     []string{"Townsend Building", "TBS"},
		EmailDomains: []string{"townsendbuilding.com.au"},
		Patterns: []RawFieldPattern{
			{Field: "po_number", Pattern: `(TBS-\d{5})`, Priority: 10},
			{Field: "po_number", Pattern: `Work Order (\d+)`, Priority: 20},
			{Field: "customer_name", Pattern: `(?im)^Site Contact name:[ \t]*(.+)$`, Priority: 10},
			{Field: "description_of_works", Pattern: `(?is)(?:Flooring|Floor Preparation):\s*(.+)`, Priority: 10},
			{Field: "dollar_value", Pattern: `(?im)^Subtotal:[ \t]*\$?` + moneyGroup, Priority: 10},
			{Field: "supervisor_name", Pattern: `(?im)^Project Manager:[ \t]*(.+)$`, Priority: 10},
			{Field: "site_address", Pattern: `(?im)^Site Address:[ \t]*(.+)$`, Priority: 10},
		},
	},
	{
		ID:           "one_solutions",
		DisplayName:  "One Solutions",
		POPattern:    `(?i)Purchase Order Number:\s*[A-Z0-9-]+`,
		Keywords:     []string{"One Solutions", "A To Z Flooring Solutions"},
		EmailDomains: []string{"onesolutions.com.au"},
		Patterns: []RawFieldPattern{
			{Field: "po_number", Pattern: `(?i)Purchase Order Number:\s*([A-Z0-9-]+)`, Priority: 10},
			{Field: "customer_name", Pattern: `(?im)^Site Contact Name:[ \t]*(.+)$`, Priority: 10},
			{Field: "description_of_works", Pattern: `(?is)Floor Covers\s*(.+)`, Priority: 10},
			{Field: "dollar_value", Pattern: `(?im)^Subtotal[ \t:]*\$?` + moneyGroup, Priority: 10},
			{Field: "supervisor_name", Pattern: `(?im)^One Solution Representative:[ \t]*(.+)$`, Priority: 10},
			{Field: "site_address", Pattern: `(?im)^Address:[ \t]*(.+)$`, Priority: 10},
		},
	},
	{
		ID:          GenericID,
		DisplayName: "Generic",
		Patterns: []RawFieldPattern{
			{Field: "po_number", Pattern: `(?im)^(?:PO|Purchase Order|Work Order)[ \t]*(?:No\.?|Number|#)?[ \t]*[:.]?[ \t]*([A-Z0-9][A-Z0-9-]{3,})[ \t]*$`, Priority: 10},
			{Field: "customer_name", Pattern: `(?im)^(?:Customer|Client|Insured(?: Owner)?(?:/Customer)?)[ \t]*[:.][ \t]*(.+)$`, Priority: 10},
			{Field: "customer_name", Pattern: `(?im)^Site Contact(?: name)?[ \t]*[:.][ \t]*(.+)$`, Priority: 20},
			{Field: "description_of_works", Pattern: `(?is)(?:Description of Works?|Scope of Works?(?:\s*/\s*Notes)?)[ \t]*[:.]\s*(.+)`, Priority: 10},
			{Field: "dollar_value", Pattern: `(?im)^(?:Total|Subtotal|Sub Total|Grand Total|Amount)[ \t]*[:.]?[ \t]*\$?` + moneyGroup + `[ \t]*$`, Priority: 10},
			{Field: "supervisor_name", Pattern: `(?im)^(?:Supervisor|Project Manager|Site Manager)[ \t]*[:.][ \t]*(.+)$`, Priority: 10},
			{Field: "supervisor_phone", Pattern: `(?im)^(?:Supervisor|Project Manager)[ \t]*(?:Phone|Mobile|Contact)[ \t]*[:.][ \t]*(\+?[0-9][0-9 ()-]{6,})[ \t]*$`, Priority: 10},
			{Field: "site_address", Pattern: `(?im)^(?:Site Address|Property Address|Address)[ \t]*[:.][ \t]*(.+)$`, Priority: 10},
			{Field: "email", Pattern: `([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`, Priority: 10},
		},
	},
}

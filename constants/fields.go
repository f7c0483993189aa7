package constants

// Field is a canonical, source-independent name for an element of the
// extracted purchase-order record. Template pattern cascades are declared
// against these names.
type Field string

// Stable values (store these exact strings in DB and registry files).
const (
	FieldCustomerName       Field = "customer_name"
	FieldAddress1           Field = "address1"
	FieldAddress2           Field = "address2"
	FieldCity               Field = "city"
	FieldState              Field = "state"
	FieldZip                Field = "zip"
	FieldPONumber           Field = "po_number"
	FieldDollarValue        Field = "dollar_value"
	FieldDescriptionOfWorks Field = "description_of_works"
	FieldSupervisorName     Field = "supervisor_name"
	FieldSupervisorPhone    Field = "supervisor_phone"
	FieldEmail              Field = "email"

	// FieldSiteAddress is extraction-only: builders print the whole site
	// address as one blob, which the assembler splits into
	// address1/address2/city/state/zip. It never appears in the output record.
	FieldSiteAddress Field = "site_address"
)

// Fields lists the canonical output fields in record order.
var Fields = []Field{
	FieldCustomerName,
	FieldAddress1,
	FieldAddress2,
	FieldCity,
	FieldState,
	FieldZip,
	FieldPONumber,
	FieldDollarValue,
	FieldDescriptionOfWorks,
	FieldSupervisorName,
	FieldSupervisorPhone,
	FieldEmail,
}

// CascadeFields lists every field a cascade may be declared for, including
// the extraction-only site address blob.
var CascadeFields = append([]Field{FieldSiteAddress}, Fields...)

// IsCascadeField reports whether name is a valid cascade target.
func IsCascadeField(name string) bool {
	for _, f := range CascadeFields {
		if string(f) == name {
			return true
		}
	}
	return false
}

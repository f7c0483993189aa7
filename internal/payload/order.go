// Package payload maps canonical purchase-order records onto the order and
// customer payload shapes expected by the flooring back office.
package payload

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atozflooring/xtracr/internal/extract"
)

// Defaults applied when an extracted record is missing site details. The
// back office rejects orders with blank ship-to addresses.
const (
	DefaultFirstName  = "Unknown"
	DefaultLastName   = "Customer"
	DefaultAddress1   = "Address Required"
	DefaultCity       = "Brisbane"
	DefaultState      = "QLD"
	DefaultPostalCode = "4000"
	DefaultCountry    = "Australia"
)

// Config carries the store-level constants stamped onto every payload.
type Config struct {
	Store       int
	StoreNumber string
	Salesperson string
	Username    string
}

func (c Config) withDefaults() Config {
	if c.Store == 0 {
		c.Store = 1
	}
	if c.StoreNumber == "" {
		c.StoreNumber = "49"
	}
	return c
}

// Address is one address block on a payload.
type Address struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BusinessName string `json:"businessName"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// CustomerPayload creates a new customer in the back office.
type CustomerPayload struct {
	CustomerType    string  `json:"customerType"`
	EntryType       string  `json:"entryType"`
	CustomerAddress Address `json:"customerAddress"`
	ShipToAddress   Address `json:"shipToAddress"`
	Phone1          string  `json:"phone1"`
	Phone2          string  `json:"phone2"`
	Email           string  `json:"email"`
	TaxStatus       string  `json:"taxStatus"`
	TaxMethod       string  `json:"taxMethod"`
	StoreNumber     string  `json:"storeNumber"`
	ActiveDate      string  `json:"activeDate"`
	Store           int     `json:"Store"`
}

// Order is the inner order body of an export.
type Order struct {
	ActionFlag         string  `json:"ActionFlag"`
	CustomerSource     string  `json:"CustomerSource"`
	CustomerSeqNum     string  `json:"CustomerSeqNum"`
	CustomerFirstName  string  `json:"CustomerFirstName"`
	CustomerLastName   string  `json:"CustomerLastName"`
	CustomerAddress1   string  `json:"CustomerAddress1"`
	CustomerAddress2   string  `json:"CustomerAddress2"`
	CustomerCity       string  `json:"CustomerCity"`
	CustomerState      string  `json:"CustomerState"`
	CustomerPostalCode string  `json:"CustomerPostalCode"`
	Phone1             string  `json:"Phone1"`
	Phone2             string  `json:"Phone2"`
	ShipToFirstName    string  `json:"ShipToFirstName"`
	ShipToLastName     string  `json:"ShipToLastName"`
	ShipToAddress1     string  `json:"ShipToAddress1"`
	ShipToAddress2     string  `json:"ShipToAddress2"`
	ShipToCity         string  `json:"ShipToCity"`
	ShipToState        string  `json:"ShipToState"`
	ShipToPostalCode   string  `json:"ShipToPostalCode"`
	SalesPerson1       string  `json:"SalesPerson1"`
	Store              int     `json:"Store"`
	InstallStore       int     `json:"InstallStore"`
	Email              string  `json:"Email"`
	CustomNote         string  `json:"CustomNote"`
	Note               string  `json:"Note"`
	PONumber           string  `json:"PONumber"`
	CustomerType       string  `json:"CustomerType"`
	JobNumber          string  `json:"JobNumber"`
	DateEntered        string  `json:"DateEntered"`
	PriceLevel         int     `json:"PriceLevel"`
	TaxStatus          string  `json:"TaxStatus"`
	UserOrderType      int     `json:"UserOrderType"`
	ServiceType        int     `json:"ServiceType"`
	ContractType       int     `json:"ContractType"`
	MiscCharges        float64 `json:"MiscCharges"`
}

// OrderPayload is the envelope posted to the order endpoint.
type OrderPayload struct {
	Username string `json:"username"`
	Order    Order  `json:"order"`
}

// Builder turns canonical records into payloads. The zero value uses
// built-in store defaults.
type Builder struct {
	cfg Config
}

func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg.withDefaults()}
}

// BuildCustomer maps a record onto a customer-creation payload. Both
// address blocks carry the site address since the record has no separate
// billing address.
func (b *Builder) BuildCustomer(rec *extract.CanonicalRecord) (CustomerPayload, error) {
	if rec == nil {
		return CustomerPayload{}, fmt.Errorf("nil record")
	}
	first, last := rec.FirstName, rec.LastName
	if first == "" && last == "" {
		return CustomerPayload{}, fmt.Errorf("customer first and last name are required")
	}

	addr := Address{
		FirstName:    first,
		LastName:     last,
		BusinessName: rec.CustomerName,
		Address1:     rec.Address1,
		Address2:     rec.Address2,
		City:         rec.City,
		State:        rec.State,
		PostalCode:   rec.Zip,
		Country:      DefaultCountry,
	}

	phone1, phone2 := recordPhones(rec)
	return CustomerPayload{
		CustomerType:    "INSURANCE",
		EntryType:       "Customer",
		CustomerAddress: addr,
		ShipToAddress:   addr,
		Phone1:          phone1,
		Phone2:          phone2,
		Email:           rec.Email,
		TaxStatus:       "Tax",
		TaxMethod:       "SalesTax",
		StoreNumber:     b.cfg.StoreNumber,
		ActiveDate:      time.Now().Format("2006-01-02"),
		Store:           b.cfg.Store,
	}, nil
}

// BuildOrder maps a record onto an order payload for an existing customer.
// Missing ship-to fields are filled with defaults rather than rejected; the
// job number falls back to the PO number when no supervisor was extracted.
func (b *Builder) BuildOrder(rec *extract.CanonicalRecord, customerSeqNum string) (OrderPayload, error) {
	if rec == nil {
		return OrderPayload{}, fmt.Errorf("nil record")
	}
	if customerSeqNum == "" {
		return OrderPayload{}, fmt.Errorf("missing sold-to customer id")
	}

	phone1, phone2 := recordPhones(rec)
	order := Order{
		ActionFlag:         "Insert",
		CustomerSource:     "Customer",
		CustomerSeqNum:     customerSeqNum,
		CustomerFirstName:  rec.FirstName,
		CustomerLastName:   rec.LastName,
		CustomerAddress1:   rec.Address1,
		CustomerAddress2:   rec.Address2,
		CustomerCity:       rec.City,
		CustomerState:      rec.State,
		CustomerPostalCode: rec.Zip,
		Phone1:             phone1,
		Phone2:             phone2,
		ShipToFirstName:    orDefault(rec.FirstName, DefaultFirstName),
		ShipToLastName:     orDefault(rec.LastName, DefaultLastName),
		ShipToAddress1:     orDefault(rec.Address1, DefaultAddress1),
		ShipToAddress2:     rec.Address2,
		ShipToCity:         orDefault(rec.City, DefaultCity),
		ShipToState:        orDefault(rec.State, DefaultState),
		ShipToPostalCode:   orDefault(rec.Zip, DefaultPostalCode),
		SalesPerson1:       b.cfg.Salesperson,
		Store:              b.cfg.Store,
		InstallStore:       b.cfg.Store,
		Email:              rec.Email,
		CustomNote:         CustomNote(rec),
		Note:               strings.TrimSpace(rec.DescriptionOfWorks),
		PONumber:           rec.PONumber,
		CustomerType:       "INSURANCE",
		JobNumber:          jobNumber(rec),
		DateEntered:        time.Now().Format("2006-01-02"),
		PriceLevel:         3,
		TaxStatus:          "Tax",
		UserOrderType:      12,
		ServiceType:        9,
		ContractType:       2,
		MiscCharges:        dollarValue(rec.DollarValue),
	}
	return OrderPayload{Username: b.cfg.Username, Order: order}, nil
}

// CustomNote renders the alternate contacts as one line each, best contact
// first.
func CustomNote(rec *extract.CanonicalRecord) string {
	var lines []string
	if c := rec.AlternateContact; c != nil && !contactEmpty(*c) {
		lines = append(lines, contactLine("Best Contact", *c))
	}
	for i, c := range rec.AlternateContacts {
		// The primary contact is mirrored in AlternateContact above.
		if i == 0 && rec.AlternateContact != nil {
			continue
		}
		if contactEmpty(c) {
			continue
		}
		label := c.Type
		if label == "" {
			label = "Contact"
		}
		lines = append(lines, contactLine(label, c))
	}
	return strings.Join(lines, "\n")
}

func contactLine(label string, c extract.AlternateContact) string {
	line := strings.TrimSpace(fmt.Sprintf("%s: %s %s", label, c.Name, c.Phone))
	if c.Phone2 != "" {
		line += ", " + c.Phone2
	}
	if c.Email != "" {
		line += " (" + c.Email + ")"
	}
	return line
}

func contactEmpty(c extract.AlternateContact) bool {
	return c.Name == "" && c.Phone == "" && c.Email == ""
}

func jobNumber(rec *extract.CanonicalRecord) string {
	jn := strings.TrimSpace(rec.SupervisorName + " " + rec.SupervisorPhone)
	if jn == "" {
		return rec.PONumber
	}
	return jn
}

func recordPhones(rec *extract.CanonicalRecord) (string, string) {
	phone1 := rec.SupervisorPhone
	var phone2 string
	if c := rec.AlternateContact; c != nil {
		if phone1 == "" {
			phone1 = c.Phone
		} else if c.Phone != phone1 {
			phone2 = c.Phone
		}
	}
	return phone1, phone2
}

func dollarValue(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

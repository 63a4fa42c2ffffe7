package models

// ZipKind selects which ZIP reference table a code belongs to.
type ZipKind string

const (
	ZipKindRegistration ZipKind = "registration"
	ZipKindViolation    ZipKind = "violation"
)

// ZipCode is a row in reg_zip_code or violation_zip_code. District is only
// stored for violation ZIPs.
type ZipCode struct {
	Kind     ZipKind
	Code     string
	State    string
	City     string
	District string
}

// RegistrationAddress is a reg_address row owned by exactly one driver.
type RegistrationAddress struct {
	AddressID int64
	ZipCode   string
	Street    string
	House     string
}

// ViolationAddress is a violation_address row owned by exactly one notice.
type ViolationAddress struct {
	AddressID int64
	ZipCode   string
	Street    string
}

// RegistrationAddressInput carries a driver's address together with the
// attributes of its ZIP code.
type RegistrationAddressInput struct {
	ZipCode string `json:"zip_code"`
	State   string `json:"state"`
	City    string `json:"city"`
	Street  string `json:"street"`
	House   string `json:"house"`
}

// Zip returns the registration ZIP reference row for the address.
func (a RegistrationAddressInput) Zip() ZipCode {
	return ZipCode{Kind: ZipKindRegistration, Code: a.ZipCode, State: a.State, City: a.City}
}

// ViolationZipInput carries the attributes of a violation ZIP code.
type ViolationZipInput struct {
	ZipCode  string `json:"zip_code"`
	State    string `json:"state"`
	City     string `json:"city"`
	District string `json:"district"`
}

// Zip returns the violation ZIP reference row.
func (z ViolationZipInput) Zip() ZipCode {
	return ZipCode{Kind: ZipKindViolation, Code: z.ZipCode, State: z.State, City: z.City, District: z.District}
}

// ViolationAddressInput carries the street where a violation happened.
type ViolationAddressInput struct {
	Street string `json:"street"`
}

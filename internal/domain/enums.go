package domain

// Closed value sets for the career fields. Empty string means "not set" and is
// always accepted; anything else must be a member of the set.

const (
	DeptEngineering     = "engineering"
	DeptSales           = "sales"
	DeptMarketing       = "marketing"
	DeptHR              = "hr"
	DeptFinance         = "finance"
	DeptOperations      = "operations"
	DeptIT              = "it"
	DeptCustomerSupport = "customer_support"
)

const (
	PosIntern   = "intern"
	PosJunior   = "junior"
	PosPleno    = "pleno"
	PosSenior   = "senior"
	PosTechLead = "tech_lead"
	PosManager  = "manager"
	PosDirector = "director"
	PosVP       = "vp"
	PosCTO      = "cto"
	PosCEO      = "ceo"
)

const (
	EmploymentFullTime  = "full_time"
	EmploymentPartTime  = "part_time"
	EmploymentContract  = "contract"
	EmploymentIntern    = "intern"
	EmploymentFreelance = "freelance"
)

var departments = map[string]struct{}{
	DeptEngineering: {}, DeptSales: {}, DeptMarketing: {}, DeptHR: {},
	DeptFinance: {}, DeptOperations: {}, DeptIT: {}, DeptCustomerSupport: {},
}

var positions = map[string]struct{}{
	PosIntern: {}, PosJunior: {}, PosPleno: {}, PosSenior: {}, PosTechLead: {},
	PosManager: {}, PosDirector: {}, PosVP: {}, PosCTO: {}, PosCEO: {},
}

var employmentTypes = map[string]struct{}{
	EmploymentFullTime: {}, EmploymentPartTime: {}, EmploymentContract: {},
	EmploymentIntern: {}, EmploymentFreelance: {},
}

func ValidDepartment(s string) bool {
	if s == "" {
		return true
	}
	_, ok := departments[s]
	return ok
}

func ValidPosition(s string) bool {
	if s == "" {
		return true
	}
	_, ok := positions[s]
	return ok
}

func ValidEmploymentType(s string) bool {
	if s == "" {
		return true
	}
	_, ok := employmentTypes[s]
	return ok
}

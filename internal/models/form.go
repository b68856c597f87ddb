// Package models defines the data structures for the submission routing engine.
package models

// Form identifiers.
const (
	FormIDAcord125 = "ACORD 125"
	FormIDAcord126 = "ACORD 126"
)

// PremisesOccupancy is the applicant's relationship to the premises.
type PremisesOccupancy string

const (
	OccupancyOwner  PremisesOccupancy = "Owner"
	OccupancyTenant PremisesOccupancy = "Tenant"
)

// TaskPriority ranks broker follow-up tasks.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// ApplicantInfo is ACORD 125 section 1.
type ApplicantInfo struct {
	ApplicantName  *string `json:"applicant_name"`
	DBA            *string `json:"dba"`
	MailingAddress *string `json:"mailing_address"`
	MailingCity    *string `json:"mailing_city"`
	MailingState   *string `json:"mailing_state"`
	MailingZip     *string `json:"mailing_zip"`
	BusinessPhone  *string `json:"business_phone"`
	FEIN           *string `json:"fein"`
}

// ContactInfo is ACORD 125 section 2, extended with client contact preferences.
type ContactInfo struct {
	ContactName          *string `json:"contact_name"`
	ContactPhone         *string `json:"contact_phone"`
	ContactEmail         *string `json:"contact_email"`
	PreferredContactTime *string `json:"preferred_contact_time"`
	ContactRestrictions  *string `json:"contact_restrictions"`
}

// PremisesInfo is ACORD 125 section 3.
type PremisesInfo struct {
	LocationNumber int                `json:"location_number"`
	StreetAddress  *string            `json:"street_address"`
	City           *string            `json:"city"`
	State          *string            `json:"state"`
	ZipCode        *string            `json:"zip_code"`
	Occupancy      *PremisesOccupancy `json:"occupancy"`
	YearBuilt      *int               `json:"year_built"`
	SquareFootage  *int               `json:"square_footage"`
}

// BusinessInfo is ACORD 125 section 4.
type BusinessInfo struct {
	NatureOfBusiness *string `json:"nature_of_business"`
	SICCode          *string `json:"sic_code"`
	NAICSCode        *string `json:"naics_code"`
	YearsInBusiness  *int    `json:"years_in_business"`
}

// RevenueInfo is ACORD 125 section 5.
type RevenueInfo struct {
	AnnualGrossSales *float64 `json:"annual_gross_sales"`
	AnnualPayroll    *float64 `json:"annual_payroll"`
}

// PriorInsurance is ACORD 125 section 6.
type PriorInsurance struct {
	PriorCarrier      *string `json:"prior_carrier"`
	PriorPolicyNumber *string `json:"prior_policy_number"`
	PriorCoverageType *string `json:"prior_coverage_type"`
}

// Acord125Form is the commercial insurance application.
type Acord125Form struct {
	FormID         string         `json:"form_id"`
	FormName       string         `json:"form_name"`
	Applicant      ApplicantInfo  `json:"applicant"`
	Contact        ContactInfo    `json:"contact"`
	Premises       PremisesInfo   `json:"premises"`
	Business       BusinessInfo   `json:"business"`
	Revenue        RevenueInfo    `json:"revenue"`
	PriorInsurance PriorInsurance `json:"prior_insurance"`
}

// ClassificationInfo is ACORD 126 section 1.
type ClassificationInfo struct {
	ClassCode                 *string `json:"class_code"`
	ClassificationDescription *string `json:"classification_description"`
	PremisesOperations        bool    `json:"premises_operations"`
	ProductsCompletedOps      bool    `json:"products_completed_ops"`
}

// LiquorLiability is ACORD 126 section 2.
type LiquorLiability struct {
	Required               bool     `json:"liquor_liability_required"`
	Type                   *string  `json:"liquor_liability_type"`
	AlcoholSalesPercentage *float64 `json:"alcohol_sales_percentage"`
	FoodSalesPercentage    *float64 `json:"food_sales_percentage"`
	AnnualLiquorReceipts   *float64 `json:"annual_liquor_receipts"`
}

// EntertainmentExposure is ACORD 126 section 3.
type EntertainmentExposure struct {
	LiveEntertainment        bool    `json:"live_entertainment"`
	EntertainmentDescription *string `json:"entertainment_description"`
	DanceFloor               bool    `json:"dance_floor"`
	PoolTables               bool    `json:"pool_tables"`
}

// OperationsHazards is ACORD 126 section 4.
type OperationsHazards struct {
	Hazards            []string `json:"hazards"`
	CookingOperations  bool     `json:"cooking_operations"`
	DeepFryer          bool     `json:"deep_fryer"`
	OpenFlameCooking   bool     `json:"open_flame_cooking"`
	DeliveryOperations bool     `json:"delivery_operations"`
	CateringOperations bool     `json:"catering_operations"`
}

// HoursOperations is ACORD 126 section 5.
type HoursOperations struct {
	OperatingHours      *string `json:"operating_hours"`
	LateNightOperations bool    `json:"late_night_operations"`
}

// Acord126Form is the commercial general liability section.
type Acord126Form struct {
	FormID          string                `json:"form_id"`
	FormName        string                `json:"form_name"`
	Classification  ClassificationInfo    `json:"classification"`
	LiquorLiability LiquorLiability       `json:"liquor_liability"`
	Entertainment   EntertainmentExposure `json:"entertainment"`
	Hazards         OperationsHazards     `json:"hazards"`
	Hours           HoursOperations       `json:"hours"`
}

// BrokerTask is a follow-up for a missing required field.
type BrokerTask struct {
	FieldName         string       `json:"field_name"`
	FormSection       string       `json:"form_section"`
	FormID            string       `json:"form_id"`
	Priority          TaskPriority `json:"priority"`
	SuggestedQuestion *string      `json:"suggested_question"`
}

// FormCompletion counts populated fields on one form.
type FormCompletion struct {
	PopulatedFields      int     `json:"populated_fields"`
	TotalFields          int     `json:"total_fields"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// MappingSummary reports completion per form.
type MappingSummary struct {
	Acord125         FormCompletion `json:"accord_125"`
	Acord126         FormCompletion `json:"accord_126"`
	BrokerTasksCount int            `json:"broker_tasks_count"`
}

// MappedForm is the output of form mapping: two forms plus follow-up tasks.
type MappedForm struct {
	Acord125    Acord125Form   `json:"accord_125"`
	Acord126    Acord126Form   `json:"accord_126"`
	BrokerTasks []BrokerTask   `json:"broker_tasks"`
	Summary     MappingSummary `json:"mapping_summary"`
}

// NewMappedForm returns an empty mapped form with form identifiers set.
func NewMappedForm() *MappedForm {
	return &MappedForm{
		Acord125: Acord125Form{
			FormID:   FormIDAcord125,
			FormName: "Commercial Insurance Application",
			Premises: PremisesInfo{LocationNumber: 1},
		},
		Acord126: Acord126Form{
			FormID:         FormIDAcord126,
			FormName:       "Commercial General Liability Section",
			Classification: ClassificationInfo{PremisesOperations: true},
			Hazards:        OperationsHazards{Hazards: []string{}},
		},
		BrokerTasks: []BrokerTask{},
	}
}

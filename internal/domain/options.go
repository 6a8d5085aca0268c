package domain

// Select options offered by the console forms.
var (
	GenderOptions = []Option{
		{"male", "Male"},
		{"female", "Female"},
		{"other", "Other"},
	}
	HighestLevelOptions = []Option{
		{"high_school", "High school"},
		{"bachelors", "Bachelor's Degree"},
		{"masters", "Master Degree"},
		{"phd", "PhD"},
	}
	CandidateStatusOptions = []Option{
		{"open", "Open"},
		{"banned", "Banned"},
	}
	PositionOptions = []Option{
		{"Backend Developer", "Backend Developer"},
		{"Business Analyst", "Business Analyst"},
		{"Tester", "Tester"},
		{"HR", "HR"},
		{"Project manager", "Project manager"},
		{"Not available", "Not available"},
	}
	CandidateSkillOptions = []Option{
		{"Java", "Java"},
		{"Flutter", "Flutter"},
		{"NodeJS", "NodeJS"},
		{"System Design", "System Design"},
		{"React", "React"},
		{"Python", "Python"},
		{"AWS", "AWS"},
	}

	JobSkillOptions = []Option{
		{"java", "Java"},
		{"flutter", "Flutter"},
		{"nodejs", "NodeJS"},
		{"system design", "System design"},
		{"react", "React"},
		{"angular", "Angular"},
		{"python", "Python"},
		{"c++", "C++"},
		{"c#", "C#"},
		{"php", "PHP"},
		{"javaScript", "JavaScript"},
		{"typeScript", "TypeScript"},
	}
	BenefitOptions = []Option{
		{"health", "Health"},
		{"dental", "Dental"},
		{"vision", "Vision"},
		{"insurance", "Insurance"},
		{"retirement", "Retirement"},
		{"pension", "Pension"},
		{"other", "Other"},
	}
	JobLevelOptions = []Option{
		{"entry", "Entry"},
		{"mid", "Mid"},
		{"senior", "Senior"},
	}

	InterviewResultOptions = []Option{
		{"", "N/A"},
		{"pass", "Pass"},
		{"fail", "Fail"},
		{"pending", "Pending"},
	}
	InterviewStatusOptions = []Option{
		{"open", "Open"},
		{"invited", "Invited"},
		{"interviewed", "Interviewed"},
		{"cancelled", "Cancelled"},
	}

	OfferStatusOptions = []Option{
		{"Pending", "Pending"},
		{"Waiting for approval", "Waiting for approval"},
		{"Approved", "Approved"},
		{"Rejected", "Rejected"},
		{"Waiting for response", "Waiting for response"},
		{"Accepted", "Accepted"},
		{"Declined", "Declined"},
		{"Cancelled", "Cancelled"},
	}
	ContractTypeOptions = []Option{
		{"permanent", "Permanent"},
		{"fixed-term", "Fixed-term"},
	}
	OfferPositionOptions = []Option{
		{"backend", "Backend"},
		{"frontend", "Frontend"},
		{"fullstack", "Fullstack"},
		{"mobile", "Mobile"},
	}
	OfferLevelOptions = []Option{
		{"intern", "Intern"},
		{"fresher", "Fresher"},
		{"junior", "Junior"},
		{"senior", "Senior"},
	}
	OfferDepartmentOptions = []Option{
		{"it", "IT"},
		{"finance", "Finance"},
		{"marketing", "Marketing"},
		{"sales", "Sales"},
	}

	RoleOptions = []Option{
		{"admin", "Admin"},
		{"recruiter", "Recruiter"},
		{"interviewer", "Interviewer"},
		{"manager", "Manager"},
	}
	UserStatusOptions = []Option{
		{"active", "Active"},
		{"inactive", "Inactive"},
	}
	UserGenderOptions = []Option{
		{"male", "Male"},
		{"female", "Female"},
	}
	DepartmentOptions = []Option{
		{"it", "IT"},
		{"hr", "HR"},
		{"finance", "Finance"},
		{"communication", "Communication"},
		{"marketing", "Marketing"},
		{"accounting", "Accounting"},
	}
)

// OptionLabel returns the label for value, or value itself when unknown.
func OptionLabel(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// List filters. An empty value means no filter.
var (
	RecruitmentStatusFilters = []Option{
		{"waiting", "Waiting for approval"},
		{"open", "Open"},
		{"interviewed", "Interviewed"},
		{"offered", "Offered"},
		{"failed", "Failed"},
		{"rejected", "Offer rejected"},
		{"banned", "Banned"},
	}
	UserRoleFilters = []Option{
		{"ROLE_ADMIN", "Admin"},
		{"ROLE_USER", "User"},
	}
	AuditSeverityFilters = []Option{
		{"INFO", "Info"},
		{"MEDIUM", "Medium"},
		{"WARN", "Warning"},
		{"HIGH", "High"},
	}
)

// CandidateStatusFilters lists every candidate status in display order.
func CandidateStatusFilters() []Option {
	options := make([]Option, 0, len(CandidateStatusOrder))
	for _, status := range CandidateStatusOrder {
		options = append(options, Option{Value: status, Label: status})
	}
	return options
}

package model

// Employee is a single row of the employee master file. Records are loaded
// once at startup and never mutated.
type Employee struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	HireDate       string `json:"hireDate"`
	EmployeeNumber string `json:"employeeNumber"`
	Salary         string `json:"salary"`
	Status         string `json:"status"`
}

// StatusActive is the employment-status value for employees still on payroll.
const StatusActive = "재직중"

// Masked returns a copy with email and phone partially hidden, for the
// contact-masking mode of the public employee endpoints.
func (e Employee) Masked() Employee {
	out := e
	out.Email = maskEmail(e.Email)
	out.Phone = maskPhone(e.Phone)
	return out
}

func maskEmail(email string) string {
	at := -1
	for i, r := range email {
		if r == '@' {
			at = i
			break
		}
	}
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return phone[:len(phone)-4] + "****"
}

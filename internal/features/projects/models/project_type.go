package projects_models

// ProjectTypeDescriptor pairs a type code with its human readable value.
type ProjectTypeDescriptor struct {
	Code         string `json:"code"`
	DisplayValue string `json:"displayValue"`
}

var projectTypes = map[string]string{
	"WET": "Legislation",
	"REG": "Regulation",
	"SUB": "Subsidy scheme",
	"HAN": "Enforcement",
}

func IsValidProjectTypeCode(code string) bool {
	_, ok := projectTypes[code]
	return ok
}

func ProjectTypeByCode(code string) ProjectTypeDescriptor {
	displayValue, ok := projectTypes[code]
	if !ok {
		return ProjectTypeDescriptor{Code: code, DisplayValue: code}
	}

	return ProjectTypeDescriptor{Code: code, DisplayValue: displayValue}
}

package directory

// donorsFor - какие группы крови можно переливать реципиенту
var donorsFor = map[string][]string{
	"O-":  {"O-"},
	"O+":  {"O+", "O-"},
	"A-":  {"A-", "O-"},
	"A+":  {"A+", "A-", "O+", "O-"},
	"B-":  {"B-", "O-"},
	"B+":  {"B+", "B-", "O+", "O-"},
	"AB-": {"AB-", "A-", "B-", "O-"},
	"AB+": {"AB+", "AB-", "A+", "A-", "B+", "B-", "O+", "O-"},
}

// BloodCompatible проверяет совместимость донора с реципиентом.
// Для неизвестной группы реципиента подходит только универсальный донор O-.
func BloodCompatible(donor, recipient string) bool {
	if recipient == "" {
		return donor == "O-"
	}
	for _, g := range donorsFor[recipient] {
		if g == donor {
			return true
		}
	}
	return false
}

package prompts

// DefaultLanguage is used when a request carries no language or an
// unsupported language code.
const DefaultLanguage = "en"

// languageInstructions maps an ISO language code to the instruction fragment
// injected into generation prompts. Adding a language is a data addition here,
// not a code change.
var languageInstructions = map[string]string{
	"en": "Write in English.",
	"de": "Write in German (Deutsch). Use formal business German.",
	"fr": "Write in French (Français). Use formal business French.",
	"es": "Write in Spanish (Español). Use formal business Spanish.",
	"it": "Write in Italian (Italiano). Use formal business Italian.",
	"pt": "Write in Portuguese (Português). Use formal business Portuguese.",
	"nl": "Write in Dutch (Nederlands). Use formal business Dutch.",
	"pl": "Write in Polish (Polski). Use formal business Polish.",
}

// LanguageInstruction returns the prompt fragment for a language code,
// falling back to English for unknown codes.
func LanguageInstruction(code string) string {
	if instr, ok := languageInstructions[code]; ok {
		return instr
	}
	return languageInstructions[DefaultLanguage]
}

// SupportedLanguage reports whether a language code has its own instruction
func SupportedLanguage(code string) bool {
	_, ok := languageInstructions[code]
	return ok
}

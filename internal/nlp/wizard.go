package nlp

import "regexp"

var reWizardTrigger = regexp.MustCompile(`(?i)/(scout|wizard|aiutami|cercami)\b`)

var vagueRequests = []*regexp.Regexp{
	regexp.MustCompile(`(?i)mi serve (qualcuno|qualcosa|un giocatore)`),
	regexp.MustCompile(`(?i)sto cercando (ma non so|qualcosa)`),
	regexp.MustCompile(`(?i)aiutami a (trovare|cercare)`),
	regexp.MustCompile(`(?i)non so (cosa|chi) cercare`),
	regexp.MustCompile(`(?i)cosa mi (consigli|suggerisci)`),
	regexp.MustCompile(`(?i)che (giocatori|opportunità) ci sono`),
}

// ShouldStartWizard reports whether text is a /scout style trigger or a
// request too vague to answer without the questionnaire.
func ShouldStartWizard(text string) bool {
	if reWizardTrigger.MatchString(text) {
		return true
	}
	for _, re := range vagueRequests {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

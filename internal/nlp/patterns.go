package nlp

import (
	"regexp"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

type familyPattern struct {
	family RoleFamily
	re     *regexp.Regexp
}

type typePattern struct {
	label        string
	availability feed.Availability
	re           *regexp.Regexp
}

type nationalityPattern struct {
	label string
	re    *regexp.Regexp
}

// Ordered: the first match wins.
var rolePatterns = []familyPattern{
	{FamilyMidfielder, regexp.MustCompile(`(?i)\b(centrocamp\w*|cc|mediano|mezzala|regista|trequartista|interno)\b`)},
	{FamilyDefender, regexp.MustCompile(`(?i)\b(difensor\w*|dc|terzin\w*|central\w*|stopper|libero)\b`)},
	{FamilyForward, regexp.MustCompile(`(?i)\b(attaccant\w*|punt\w*|bomber|ala|esterno.?offensiv\w*|prima.?punta|seconda.?punta|goleador)\b`)},
	{FamilyGoalkeeper, regexp.MustCompile(`(?i)\b(portier\w*|gk|goalkeeper|numero.?1)\b`)},
}

var typePatterns = []typePattern{
	{"svincolato", feed.AvailabilityFreeAgent, regexp.MustCompile(`(?i)\b(svincolat\w*|liber\w*|free|senza.?contratto|a.?zero)\b`)},
	{"prestito", feed.AvailabilityLoan, regexp.MustCompile(`(?i)\b(prestit\w*|loan|in.?prestito|temporane\w*)\b`)},
	{"rescissione", feed.AvailabilityMutualTermination, regexp.MustCompile(`(?i)\b(rescission\w*|risoluzion\w*|consensual\w*)\b`)},
	{"scadenza", feed.AvailabilityContractExpiring, regexp.MustCompile(`(?i)\b(scadenz\w*|contratto.?in.?scadenza|fine.?contratto)\b`)},
}

const nationalityEuropean = "europeo"

var nationalityPatterns = []nationalityPattern{
	{"sudamericano", regexp.MustCompile(`(?i)\b(sudamerican\w*|sud.?american\w*|argentino|brasiliano|uruguaiano|colombiano|cileno|peruviano|paraguaiano|venezuelano|ecuadoriano|boliviano)\b`)},
	{nationalityEuropean, regexp.MustCompile(`(?i)\b(europe\w*|comunitari\w*|passaporto.?(?:eu|ue|comunitari\w*|europe\w*))\b`)},
	{"africano", regexp.MustCompile(`(?i)\b(african\w*|senegalese|nigeriano|camerunese|ivoriano|ghanese|marocchino|egiziano|algerino|tunisino)\b`)},
}

var (
	reGreeting  = regexp.MustCompile(`(?i)^(ciao|salve|buongiorno|buonasera|hey|hi|hello|ehi)[\s!?]*$`)
	reSmallTalk = regexp.MustCompile(`(?i)^(come stai|tutto bene|ok|grazie|thanks)[\s!?]*$`)

	reHot         = regexp.MustCompile(`(?i)\b(miglior\w*|top|hot|priorit\w*|urgent\w*|imperdibil\w*|da.?prendere|consiglia|raccomand\w*|important\w*|principal\w*)\b`)
	reWarm        = regexp.MustCompile(`(?i)\b(interessant\w*|warm|tener\w*.?d.?occhio|monitorare|seguire|valutare|notevol\w*)\b`)
	reListAll     = regexp.MustCompile(`(?i)\b(tutt\w*|lista|elenco|complet\w*|mostrar?\w*|far.?vedere|veder\w*|elenca|dammi|dimmi)\b`)
	reStats       = regexp.MustCompile(`(?i)\b(statistic\w*|numer\w*|quant\w*|riepilog\w*|report|situazione|sommario)\b`)
	reHelp        = regexp.MustCompile(`(?i)\b(aiuto|help|come.?funzion\w*|cosa.?(puoi|sai)|comand\w*|istruzioni)\b`)
	reSearch      = regexp.MustCompile(`(?i)\b(cerca|trovami|chi.?[eè]|info.?su|dimmi.?di|parlami.?di|conosc\w*)\b`)
	reGenericList = regexp.MustCompile(`(?i)\b(occasioni|opportunit\w*|giocator\w*|calciat\w*|disponibil\w*|mercato|news|novit\w*|aggiornament\w*|ricostruire|rifondare|rinforzare|acquist\w*|prendere)\b`)
	reTime        = regexp.MustCompile(`(?i)\b(oggi|ieri|recent\w*|ultim\w*|nuov\w*|ultimo|fresc\w*|appena)\b`)
	reNeedPlayers = regexp.MustCompile(`(?i)\b(devo|dobbiamo|bisogna|serve|servono)\b.*\b(ricostruire|rinforzare|comprare|prendere|trovare|cercare|squadra|rosa)\b`)
	reTalent      = regexp.MustCompile(`(?i)\b(talenti|prodigy|giovani.?promesse|migliori.?talenti|top.?talenti|squadre?.?b|under\s?23|next\s?gen|futuro|primavera)\b`)
	reClubFit     = regexp.MustCompile(`(?i)\b(match\w*|fit|adatti?\s*(a|per)?|compatibil\w*|profilo|dna)\b`)
	reWatch       = regexp.MustCompile(`(?i)\b(avvisami|notificami|alertami|segnalami|fammi sapere|tienimi aggiornato|monitora|segui|watch)\b.*\b(quando|se|trovi|esce|arriva|disponibile)\b`)
	reWatchAlt    = regexp.MustCompile(`(?i)\b(voglio|vorrei)\b.*\b(essere avvisato|ricevere notifiche|sapere quando)\b`)

	reYoung       = regexp.MustCompile(`(?i)\b(giovan\w*|under.?(\d+)|u(\d+)|ragaz\w*)\b`)
	reExperienced = regexp.MustCompile(`(?i)\b(espert\w*|over.?(\d+)|veteran\w*|esperto)\b`)
	reExactAge    = regexp.MustCompile(`(?i)\b(\d{2})\s*anni\b`)
	reAgeWord     = regexp.MustCompile(`(?i)^(giovan[ei]|giovanissim\w*|ragazz\w*|espert\w*|veteran\w*|under|over)$`)

	reNameStopWords = regexp.MustCompile(`(?i)\b(cerca|cerco|cerchiamo|trovami|chi|è|e|info|su|dimmi|di|mostra|voglio|vorrei|vedere|serve|servono|ho|mi|abbiamo|le|i|gli|la|il|lo|un|una|dei|delle|del|della)\b`)
	reNameRun       = regexp.MustCompile(`\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)*`)

	reLimit    = regexp.MustCompile(`(?i)\b(prim[oiae]|top\s*)?(\d+)\b`)
	reAgeLead  = regexp.MustCompile(`(?i)\b(under|over|u)\s*$`)
	reAgeTrail = regexp.MustCompile(`(?i)^\s*anni\b`)

	reQuestion = regexp.MustCompile(`(?i)[?]|\b(ci sono|c'è|cosa|quali|che)\b`)
	reFootball = regexp.MustCompile(`(?i)\b(gioc\w*|calc\w*|serie|mercato|trasfer\w*|acquist\w*)\b`)
)

// Tried in order against the lowercased text; group 1 holds the club.
var clubPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:rifondare|ricostruire|rinforzare|aiutare|sistemare)\s+(?:il\s+|lo\s+|la\s+|l')?(\w+)(?:\s+fc)?`),
	regexp.MustCompile(`(?i)\b(?:per|a)\s+(?:il\s+|lo\s+|la\s+|l')?(\w+)(?:\s+fc)?`),
	regexp.MustCompile(`(?i)\badatti?\s*(?:a|per)?\s+(?:il\s+|lo\s+|la\s+|l')?(\w+)(?:\s+fc)?`),
	regexp.MustCompile(`(?i)\b(?:match|dna|profilo)\s+(?:per\s+)?(?:il\s+|lo\s+|la\s+|l')?(\w+)`),
}

var clubSkipWords = map[string]struct{}{
	"rifondare": {}, "ricostruire": {}, "rinforzare": {}, "aiutare": {},
	"sistemare": {}, "dei": {}, "giocatori": {}, "adatti": {},
	"per": {}, "il": {}, "lo": {}, "la": {},
}

// Capitalized words that never count as a player name.
var nameKeywords = map[string]struct{}{
	"Migliori": {}, "Top": {}, "Tutti": {}, "Hot": {}, "Warm": {}, "Cold": {}, "Lista": {}, "Occasioni": {},
}

// vocabulary lists every pattern whose words are query vocabulary rather than names.
var vocabulary = []*regexp.Regexp{
	reHot, reWarm, reListAll, reStats, reHelp, reSearch, reGenericList, reTime,
	reTalent, reClubFit, reAgeWord, reQuestion, reFootball,
	reGreeting, reSmallTalk,
}

func isVocabulary(word string) bool {
	if _, ok := nameKeywords[word]; ok {
		return true
	}
	for _, p := range rolePatterns {
		if p.re.MatchString(word) {
			return true
		}
	}
	for _, p := range typePatterns {
		if p.re.MatchString(word) {
			return true
		}
	}
	for _, p := range nationalityPatterns {
		if p.re.MatchString(word) {
			return true
		}
	}
	for _, re := range vocabulary {
		if re.MatchString(word) {
			return true
		}
	}
	return false
}

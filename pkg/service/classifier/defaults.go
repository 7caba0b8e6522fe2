package classifier

// Default trigger vocabulary, Greek and English. Overridable via the app
// configuration file.
var defaultIndicators = []string{
	// Greek fact-lookup phrases
	"τι είναι", "τι είναι το", "πες μου για", "πληροφορίες για",
	"ποιος είναι", "ποια είναι", "πότε", "πού", "γιατί",
	"ωράριο", "ώρες λειτουργίας", "διεύθυνση", "τηλέφωνο",
	"πρόσφατα νέα", "τελευταία νέα", "τιμή", "κόστος",
	"πώς να", "οδηγίες για",
	// English fact-lookup phrases
	"what is", "tell me about", "information about",
	"who is", "when", "where", "why", "how to",
	"latest news", "recent news", "price", "cost",
	"opening hours", "address", "phone",
}

var defaultRecency = []string{
	"σήμερα", "χθες", "τώρα", "πρόσφατα", "επίκαιρο", "επικαιρότητα",
	"today", "yesterday", "now", "recent", "current", "latest",
}

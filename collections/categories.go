package collections

// Category describes one of the nine fixed cost domains. Key doubles as the
// name of the line-item ledger collection; the template ledger is derived
// through TemplateLedger. Label is the human-facing name, ReportLabel the
// group-header text used in exported documents.
type Category struct {
	Key         string
	Label       string
	ReportLabel string
}

// Categories is the fixed, ordered enumeration of cost categories. Ledger
// names are always resolved through this table, never built from user input.
var Categories = []Category{
	{Key: "logistique_transport", Label: "Logistique & Transport", ReportLabel: "LOGISTIQUE & TRANSPORT"},
	{Key: "materiel_electrique", Label: "Matériel Électrique", ReportLabel: "APPAREILS ÉLECTRIQUES"},
	{Key: "materiel_genie_civil", Label: "Matériel Génie Civil", ReportLabel: "MATÉRIEL GÉNIE CIVIL"},
	{Key: "materiel_instrumentation", Label: "Matériel Instrumentation", ReportLabel: "MATÉRIEL INSTRUMENTATION"},
	{Key: "ingenieur_process", Label: "Ingénieur Process", ReportLabel: "INGÉNIEUR PROCESS"},
	{Key: "materiel_tuyauterie", Label: "Matériel Tuyauterie", ReportLabel: "MATÉRIEL TUYAUTERIE"},
	{Key: "main_oeuvre_electric", Label: "Main d'œuvre Électrique", ReportLabel: "MAIN D'ŒUVRE ÉLECTRIQUE"},
	{Key: "main_oeuvre_installation", Label: "Main d'œuvre Installation", ReportLabel: "MAIN D'ŒUVRE INSTALLATION"},
	{Key: "main_oeuvre_tuyauterie", Label: "Main d'œuvre Tuyauterie", ReportLabel: "MAIN D'ŒUVRE TUYAUTERIE"},
}

// CategoryByKey resolves a category key through the registry.
func CategoryByKey(key string) (Category, bool) {
	for _, c := range Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryKeys returns the nine keys in registry order.
func CategoryKeys() []string {
	keys := make([]string, len(Categories))
	for i, c := range Categories {
		keys[i] = c.Key
	}
	return keys
}

// TemplateLedger returns the template collection name for a category key.
func TemplateLedger(key string) string {
	return key + "_templates"
}

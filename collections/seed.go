package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type templateDef struct {
	description string
	unitPrice   float64
}

// Seed populates the template ledgers with a realistic FCFA reference price
// list per category. It is safe to call on every startup because it returns
// early as soon as any template record exists.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if any template ledger has records ─────────
	for _, cat := range Categories {
		col, err := app.FindCollectionByNameOrId(TemplateLedger(cat.Key))
		if err != nil {
			return fmt.Errorf("seed: could not find ledger %q: %w", TemplateLedger(cat.Key), err)
		}
		existing, err := app.FindAllRecords(col)
		if err != nil {
			return fmt.Errorf("seed: could not query ledger %q: %w", TemplateLedger(cat.Key), err)
		}
		if len(existing) > 0 {
			return nil // already seeded
		}
	}

	log.Println("seed: template ledgers are empty – inserting reference price lists …")

	seedData := map[string][]templateDef{
		"logistique_transport": {
			{"Location camion-grue 50T (journée)", 450000},
			{"Transport conteneur 40' Abidjan - site", 850000},
			{"Manutention et levage équipements lourds", 320000},
			{"Location chariot élévateur 5T (journée)", 180000},
		},
		"materiel_electrique": {
			{"Disjoncteur tétrapolaire 400A", 485000},
			{"Armoire électrique IP55 équipée", 1250000},
			{"Câble U1000 R2V 4x95mm² (le mètre)", 28500},
			{"Transformateur 400kVA 15kV/400V", 8500000},
			{"Coffret de distribution 12 départs", 340000},
		},
		"materiel_genie_civil": {
			{"Ciment CPA 42.5 (tonne)", 95000},
			{"Béton prêt à l'emploi C25/30 (m³)", 85000},
			{"Acier HA12 (tonne)", 620000},
			{"Coffrage métallique (m²)", 18000},
		},
		"materiel_instrumentation": {
			{"Transmetteur de pression 4-20mA", 680000},
			{"Débitmètre électromagnétique DN100", 2450000},
			{"Sonde de température PT100 avec puits", 185000},
			{"Automate programmable 32 E/S", 1850000},
		},
		"ingenieur_process": {
			{"Étude de dimensionnement process (journée)", 350000},
			{"Simulation et bilan matière (forfait)", 2800000},
			{"Supervision mise en service (journée)", 420000},
		},
		"materiel_tuyauterie": {
			{"Tube acier inox 304L DN80 (le mètre)", 45000},
			{"Vanne papillon DN100 PN16", 285000},
			{"Bride plate DN80 PN16 (paire)", 38000},
			{"Clapet anti-retour DN100", 195000},
		},
		"main_oeuvre_electric": {
			{"Électricien industriel qualifié (journée)", 45000},
			{"Chef d'équipe électricité (journée)", 65000},
			{"Tirage de câbles (le mètre)", 1500},
		},
		"main_oeuvre_installation": {
			{"Monteur mécanique (journée)", 42000},
			{"Chef de chantier installation (journée)", 75000},
			{"Calage et alignement machine (forfait)", 480000},
		},
		"main_oeuvre_tuyauterie": {
			{"Tuyauteur soudeur qualifié (journée)", 55000},
			{"Soudure inox orbitale (le joint)", 85000},
			{"Épreuve hydraulique de ligne (forfait)", 350000},
		},
	}

	for _, cat := range Categories {
		col, err := app.FindCollectionByNameOrId(TemplateLedger(cat.Key))
		if err != nil {
			return fmt.Errorf("seed: could not find ledger %q: %w", TemplateLedger(cat.Key), err)
		}
		for _, d := range seedData[cat.Key] {
			r := core.NewRecord(col)
			r.Set("description", d.description)
			r.Set("unit_price", d.unitPrice)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: save template %q (%s): %w", d.description, cat.Key, err)
			}
		}
	}

	log.Println("seed: reference price lists inserted for all 9 categories")
	return nil
}

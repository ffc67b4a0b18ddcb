// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chemical detects concerning food additives in ingredient text.
// The knowledge base is a closed enumeration of canonical identifiers; all
// three detection techniques resolve surface forms (regulatory codes, trade
// names, misspellings) to these IDs before deduplication.
package chemical

import "github.com/pdiddy/nutriscan/pkg/types"

// ID is the canonical identifier of one chemical. Detections from
// different surface forms of the same chemical share one ID.
type ID string

const (
	BHA                   ID = "bha"
	BHT                   ID = "bht"
	TBHQ                  ID = "tbhq"
	SodiumBenzoate        ID = "sodium_benzoate"
	PotassiumSorbate      ID = "potassium_sorbate"
	SodiumNitrite         ID = "sodium_nitrite"
	SodiumNitrate         ID = "sodium_nitrate"
	SulfurDioxide         ID = "sulfur_dioxide"
	Red40                 ID = "red_40"
	Yellow5               ID = "yellow_5"
	Blue1                 ID = "blue_1"
	CaramelColor          ID = "caramel_color"
	Aspartame             ID = "aspartame"
	Sucralose             ID = "sucralose"
	AcesulfameK           ID = "acesulfame_k"
	Saccharin             ID = "saccharin"
	Cyclamate             ID = "cyclamate"
	HighFructoseCornSyrup ID = "high_fructose_corn_syrup"
	MSG                   ID = "monosodium_glutamate"
	DisodiumGuanylate     ID = "disodium_guanylate"
	Polysorbate80         ID = "polysorbate_80"
	Polysorbate60         ID = "polysorbate_60"
	Carrageenan           ID = "carrageenan"
	Lecithin              ID = "lecithin"
	XanthanGum            ID = "xanthan_gum"
	GuarGum               ID = "guar_gum"
)

// Record is the fixed knowledge-base entry for one chemical.
type Record struct {
	Name          string
	Category      types.ChemicalCategory
	Risk          types.RiskLevel
	Description   string
	HealthEffects []string
	Alternatives  []string

	// Aliases are alternative surface forms matched by the keyword pass.
	Aliases []string

	// Misspellings are curated OCR/typo corruptions matched by the fuzzy
	// pass at the lowest confidence tier.
	Misspellings []string
}

var knowledgeBase = map[ID]Record{
	BHA: {
		Name:          "BHA",
		Category:      types.CategoryPreservative,
		Risk:          types.RiskHigh,
		Description:   "Butylated hydroxyanisole, a potential carcinogen",
		HealthEffects: []string{"Potential carcinogen", "May cause allergic reactions"},
		Alternatives:  []string{"Vitamin E (tocopherols)", "Rosemary extract"},
		Aliases:       []string{"butylated hydroxyanisole"},
	},
	BHT: {
		Name:          "BHT",
		Category:      types.CategoryPreservative,
		Risk:          types.RiskHigh,
		Description:   "Butylated hydroxytoluene, a potential carcinogen",
		HealthEffects: []string{"Potential carcinogen", "May affect liver function"},
		Alternatives:  []string{"Vitamin E (tocopherols)", "Ascorbic acid"},
		Aliases:       []string{"butylated hydroxytoluene"},
	},
	TBHQ: {
		Name:        "TBHQ",
		Category:    types.CategoryPreservative,
		Risk:        types.RiskHigh,
		Description: "Tertiary butylhydroquinone, linked to immune effects at high doses",
		Aliases:     []string{"tertiary butylhydroquinone"},
	},
	SodiumBenzoate: {
		Name:        "Sodium Benzoate",
		Category:    types.CategoryPreservative,
		Risk:        types.RiskMedium,
		Description: "May form benzene when combined with vitamin C",
		Aliases:     []string{"benzoate of soda"},
	},
	PotassiumSorbate: {
		Name:        "Potassium Sorbate",
		Category:    types.CategoryPreservative,
		Risk:        types.RiskLow,
		Description: "Generally recognized as safe",
		Aliases:     []string{"sorbate of potash"},
	},
	SodiumNitrite: {
		Name:          "Sodium Nitrite",
		Category:      types.CategoryPreservative,
		Risk:          types.RiskHigh,
		Description:   "May form nitrosamines, potential carcinogens",
		HealthEffects: []string{"May form carcinogenic nitrosamines", "Linked to colorectal cancer"},
		Alternatives:  []string{"Celery powder", "Sea salt"},
		Aliases:       []string{"nitrite"},
	},
	SodiumNitrate: {
		Name:        "Sodium Nitrate",
		Category:    types.CategoryPreservative,
		Risk:        types.RiskHigh,
		Description: "May form nitrosamines, potential carcinogens",
		Aliases:     []string{"nitrate"},
	},
	SulfurDioxide: {
		Name:        "Sulfur Dioxide",
		Category:    types.CategoryPreservative,
		Risk:        types.RiskMedium,
		Description: "May cause allergic reactions in sensitive individuals",
	},
	Red40: {
		Name:          "Red 40",
		Category:      types.CategoryArtificialColor,
		Risk:          types.RiskMedium,
		Description:   "May cause hyperactivity in children",
		HealthEffects: []string{"May cause hyperactivity in children", "Potential allergic reactions"},
		Alternatives:  []string{"Beet juice", "Paprika extract", "Annatto"},
		Aliases:       []string{"allura red", "fd&c red 40"},
	},
	Yellow5: {
		Name:        "Yellow 5",
		Category:    types.CategoryArtificialColor,
		Risk:        types.RiskMedium,
		Description: "May cause allergic reactions",
		Aliases:     []string{"tartrazine", "fd&c yellow 5"},
	},
	Blue1: {
		Name:        "Blue 1",
		Category:    types.CategoryArtificialColor,
		Risk:        types.RiskMedium,
		Description: "May cause allergic reactions",
		Aliases:     []string{"brilliant blue", "fd&c blue 1"},
	},
	CaramelColor: {
		Name:        "Caramel Color",
		Category:    types.CategoryArtificialColor,
		Risk:        types.RiskMedium,
		Description: "May contain 4-methylimidazole",
	},
	Aspartame: {
		Name:          "Aspartame",
		Category:      types.CategorySweetener,
		Risk:          types.RiskMedium,
		Description:   "Avoid if phenylketonuria",
		HealthEffects: []string{"May cause headaches", "Not suitable for phenylketonuria"},
		Alternatives:  []string{"Stevia", "Monk fruit extract"},
		Aliases:       []string{"nutrasweet", "equal"},
		Misspellings:  []string{"aspartam", "asparteme"},
	},
	Sucralose: {
		Name:        "Sucralose",
		Category:    types.CategorySweetener,
		Risk:        types.RiskLow,
		Description: "Generally recognized as safe",
		Aliases:     []string{"splenda"},
	},
	AcesulfameK: {
		Name:        "Acesulfame K",
		Category:    types.CategorySweetener,
		Risk:        types.RiskMedium,
		Description: "Limited long-term studies",
		Aliases:     []string{"acesulfame potassium", "ace-k"},
	},
	Saccharin: {
		Name:        "Saccharin",
		Category:    types.CategorySweetener,
		Risk:        types.RiskMedium,
		Description: "Potential bladder cancer risk in animal studies",
	},
	Cyclamate: {
		Name:        "Cyclamate",
		Category:    types.CategorySweetener,
		Risk:        types.RiskMedium,
		Description: "Banned in some countries due to cancer concerns",
	},
	HighFructoseCornSyrup: {
		Name:          "High Fructose Corn Syrup",
		Category:      types.CategorySweetener,
		Risk:          types.RiskHigh,
		Description:   "Linked to obesity and diabetes",
		HealthEffects: []string{"Linked to obesity", "May contribute to diabetes"},
		Alternatives:  []string{"Pure cane sugar", "Honey", "Maple syrup"},
		Aliases:       []string{"hfcs", "glucose-fructose"},
	},
	MSG: {
		Name:          "Monosodium Glutamate",
		Category:      types.CategoryFlavorEnhancer,
		Risk:          types.RiskMedium,
		Description:   "May cause headaches and nausea in sensitive individuals",
		HealthEffects: []string{"May cause headaches", "Can trigger nausea in sensitive individuals"},
		Alternatives:  []string{"Natural herbs and spices", "Nutritional yeast"},
		Aliases:       []string{"msg", "sodium glutamate", "glutamic acid"},
		Misspellings:  []string{"monosodium glutamat"},
	},
	DisodiumGuanylate: {
		Name:        "Disodium Guanylate",
		Category:    types.CategoryFlavorEnhancer,
		Risk:        types.RiskLow,
		Description: "Generally recognized as safe",
	},
	Polysorbate80: {
		Name:        "Polysorbate 80",
		Category:    types.CategoryEmulsifier,
		Risk:        types.RiskMedium,
		Description: "May affect gut microbiome",
		Aliases:     []string{"tween 80"},
	},
	Polysorbate60: {
		Name:        "Polysorbate 60",
		Category:    types.CategoryEmulsifier,
		Risk:        types.RiskMedium,
		Description: "May affect gut microbiome",
		Aliases:     []string{"tween 60"},
	},
	Carrageenan: {
		Name:          "Carrageenan",
		Category:      types.CategoryEmulsifier,
		Risk:          types.RiskMedium,
		Description:   "May cause digestive inflammation",
		HealthEffects: []string{"May cause digestive inflammation", "Potential gut irritation"},
		Aliases:       []string{"irish moss extract"},
		Misspellings:  []string{"carragean", "caragenan"},
	},
	Lecithin: {
		Name:        "Lecithin",
		Category:    types.CategoryEmulsifier,
		Risk:        types.RiskLow,
		Description: "Generally recognized as safe",
		Aliases:     []string{"soy lecithin", "sunflower lecithin"},
	},
	XanthanGum: {
		Name:        "Xanthan Gum",
		Category:    types.CategoryEmulsifier,
		Risk:        types.RiskLow,
		Description: "Generally recognized as safe",
		Aliases:     []string{"xanthan"},
		Misspellings: []string{"xantham"},
	},
	GuarGum: {
		Name:        "Guar Gum",
		Category:    types.CategoryEmulsifier,
		Risk:        types.RiskLow,
		Description: "Generally recognized as safe",
		Aliases:     []string{"guaran"},
	},
}

// eNumberIndex maps European additive codes to canonical IDs.
var eNumberIndex = map[string]ID{
	"e102": Yellow5,
	"e129": Red40,
	"e133": Blue1,
	"e150": CaramelColor,
	"e202": PotassiumSorbate,
	"e211": SodiumBenzoate,
	"e220": SulfurDioxide,
	"e250": SodiumNitrite,
	"e251": SodiumNitrate,
	"e319": TBHQ,
	"e320": BHA,
	"e321": BHT,
	"e322": Lecithin,
	"e407": Carrageenan,
	"e412": GuarGum,
	"e415": XanthanGum,
	"e433": Polysorbate80,
	"e435": Polysorbate60,
	"e621": MSG,
	"e627": DisodiumGuanylate,
	"e950": AcesulfameK,
	"e951": Aspartame,
	"e952": Cyclamate,
	"e954": Saccharin,
	"e955": Sucralose,
}

// Generic fallback lines for chemicals without curated entries.
var (
	genericEffects      = []string{"Potential health concerns - consult a healthcare provider"}
	genericAlternatives = []string{"Look for organic alternatives", "Choose products with natural ingredients"}
)

// Lookup resolves an ID against the knowledge base.
func Lookup(id ID) (Record, bool) {
	rec, ok := knowledgeBase[id]
	return rec, ok
}

// All returns every knowledge-base entry keyed by ID.
func All() map[ID]Record {
	out := make(map[ID]Record, len(knowledgeBase))
	for id, rec := range knowledgeBase {
		out[id] = rec
	}
	return out
}

// Info materializes the public ChemicalInfo for an ID, filling in generic
// effect and alternative lines when the record has none.
func Info(id ID) (types.ChemicalInfo, bool) {
	rec, ok := knowledgeBase[id]
	if !ok {
		return types.ChemicalInfo{}, false
	}

	effects := rec.HealthEffects
	if len(effects) == 0 {
		effects = genericEffects
	}
	alternatives := rec.Alternatives
	if len(alternatives) == 0 {
		alternatives = genericAlternatives
	}

	return types.ChemicalInfo{
		Name:          rec.Name,
		Category:      rec.Category,
		RiskLevel:     rec.Risk,
		Description:   rec.Description,
		HealthEffects: effects,
		Alternatives:  alternatives,
	}, true
}

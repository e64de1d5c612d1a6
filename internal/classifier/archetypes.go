package classifier

import "slices"

// Archetype is a visual/care category a plant can be classified into.
// All match sets hold lower-case strings.
type Archetype struct {
	Tag                string
	Families           []string
	Genera             []string
	Keywords           []string
	ScientificPatterns []string
	Color              string
	AltColors          []string
	BaseConfidence     float64
	Description        string

	// Default care cadence for plants of this archetype.
	WateringDays    int
	FertilizingDays int
	DroughtTolerant bool
}

// GenericTag is the tag of the universal fallback archetype.
const GenericTag = "generic"

// archetypes is the read-only archetype table. The last entry must be the
// generic fallback with empty match sets.
var archetypes = []Archetype{
	{
		Tag:                "monstera",
		Families:           []string{"araceae"},
		Genera:             []string{"monstera"},
		Keywords:           []string{"monstera", "swiss cheese", "split leaf"},
		ScientificPatterns: []string{"monstera"},
		Color:              "#2E7D32",
		AltColors:          []string{"#388E3C", "#1B5E20"},
		BaseConfidence:     0.9,
		Description:        "Large fenestrated leaves on a climbing aroid",
		WateringDays:       7,
		FertilizingDays:    30,
	},
	{
		Tag:                "pothos",
		Families:           []string{"araceae"},
		Genera:             []string{"epipremnum", "scindapsus"},
		Keywords:           []string{"pothos", "devil's ivy", "money plant"},
		ScientificPatterns: []string{"epipremnum", "scindapsus"},
		Color:              "#43A047",
		AltColors:          []string{"#C0CA33", "#66BB6A"},
		BaseConfidence:     0.85,
		Description:        "Trailing vine with heart-shaped leaves",
		WateringDays:       7,
		FertilizingDays:    30,
	},
	{
		Tag:                "philodendron",
		Families:           []string{"araceae"},
		Genera:             []string{"philodendron"},
		Keywords:           []string{"philodendron", "heartleaf"},
		ScientificPatterns: []string{"philodendron"},
		Color:              "#388E3C",
		AltColors:          []string{"#7CB342"},
		BaseConfidence:     0.85,
		Description:        "Climbing or upright aroid with glossy leaves",
		WateringDays:       7,
		FertilizingDays:    30,
	},
	{
		Tag:                "peace_lily",
		Families:           []string{"araceae"},
		Genera:             []string{"spathiphyllum"},
		Keywords:           []string{"peace lily", "spathiphyllum"},
		ScientificPatterns: []string{"spathiphyllum"},
		Color:              "#1B5E20",
		AltColors:          []string{"#F5F5F5"},
		BaseConfidence:     0.85,
		Description:        "Dark leaves with white spathe flowers",
		WateringDays:       5,
		FertilizingDays:    42,
	},
	{
		Tag:                "zz_plant",
		Families:           []string{"araceae"},
		Genera:             []string{"zamioculcas"},
		Keywords:           []string{"zz plant", "zanzibar gem"},
		ScientificPatterns: []string{"zamioculcas"},
		Color:              "#33691E",
		AltColors:          []string{"#212121"},
		BaseConfidence:     0.85,
		Description:        "Waxy upright stems that store water",
		WateringDays:       14,
		FertilizingDays:    60,
		DroughtTolerant:    true,
	},
	{
		Tag:                "snake_plant",
		Families:           []string{"asparagaceae"},
		Genera:             []string{"sansevieria", "dracaena"},
		Keywords:           []string{"snake plant", "mother-in-law", "sansevieria", "dracaena"},
		ScientificPatterns: []string{"sansevieria", "dracaena trifasciata"},
		Color:              "#558B2F",
		AltColors:          []string{"#FBC02D", "#33691E"},
		BaseConfidence:     0.9,
		Description:        "Stiff upright sword-shaped leaves",
		WateringDays:       14,
		FertilizingDays:    60,
		DroughtTolerant:    true,
	},
	{
		Tag:                "spider_plant",
		Families:           []string{"asparagaceae"},
		Genera:             []string{"chlorophytum"},
		Keywords:           []string{"spider plant", "airplane plant", "ribbon plant"},
		ScientificPatterns: []string{"chlorophytum"},
		Color:              "#7CB342",
		AltColors:          []string{"#F1F8E9"},
		BaseConfidence:     0.85,
		Description:        "Arching striped leaves with hanging plantlets",
		WateringDays:       7,
		FertilizingDays:    30,
	},
	{
		Tag:                "succulent_rosette",
		Families:           []string{"crassulaceae"},
		Genera:             []string{"echeveria", "sempervivum", "graptopetalum", "aeonium", "crassula"},
		Keywords:           []string{"succulent", "echeveria", "hens and chicks", "jade", "rosette"},
		ScientificPatterns: []string{"echeveria", "sempervivum", "crassula ovata"},
		Color:              "#80CBC4",
		AltColors:          []string{"#B39DDB", "#A5D6A7"},
		BaseConfidence:     0.8,
		Description:        "Compact rosette of fleshy leaves",
		WateringDays:       14,
		FertilizingDays:    60,
		DroughtTolerant:    true,
	},
	{
		Tag:                "aloe",
		Families:           []string{"asphodelaceae"},
		Genera:             []string{"aloe", "haworthia", "gasteria"},
		Keywords:           []string{"aloe", "haworthia", "zebra haworthia"},
		ScientificPatterns: []string{"aloe vera", "aloe barbadensis", "haworthia"},
		Color:              "#9CCC65",
		AltColors:          []string{"#689F38"},
		BaseConfidence:     0.85,
		Description:        "Spiky succulent with gel-filled leaves",
		WateringDays:       14,
		FertilizingDays:    60,
		DroughtTolerant:    true,
	},
	{
		Tag:                "cactus",
		Families:           []string{"cactaceae"},
		Genera:             []string{"opuntia", "mammillaria", "echinocactus", "cereus", "schlumbergera", "gymnocalycium"},
		Keywords:           []string{"cactus", "cacti", "prickly pear", "christmas cactus"},
		ScientificPatterns: []string{"opuntia", "mammillaria", "echinopsis", "cereus"},
		Color:              "#689F38",
		AltColors:          []string{"#F06292", "#FFB74D"},
		BaseConfidence:     0.9,
		Description:        "Spined succulent stems adapted to arid soil",
		WateringDays:       21,
		FertilizingDays:    90,
		DroughtTolerant:    true,
	},
	{
		Tag:                "fern_boston",
		Families:           []string{"nephrolepidaceae", "lomariopsidaceae"},
		Genera:             []string{"nephrolepis"},
		Keywords:           []string{"boston fern", "sword fern", "fern"},
		ScientificPatterns: []string{"nephrolepis exaltata", "nephrolepis"},
		Color:              "#66BB6A",
		AltColors:          []string{"#A5D6A7"},
		BaseConfidence:     0.85,
		Description:        "Arching feathery fronds that like humidity",
		WateringDays:       3,
		FertilizingDays:    30,
	},
	{
		Tag:                "fern",
		Families:           []string{"pteridaceae", "aspleniaceae", "polypodiaceae", "davalliaceae"},
		Genera:             []string{"adiantum", "asplenium", "platycerium", "pteris", "davallia"},
		Keywords:           []string{"fern", "maidenhair", "bird's nest", "staghorn"},
		ScientificPatterns: []string{"adiantum", "asplenium", "platycerium"},
		Color:              "#81C784",
		AltColors:          []string{"#4CAF50"},
		BaseConfidence:     0.75,
		Description:        "Delicate fronds for shady humid spots",
		WateringDays:       4,
		FertilizingDays:    30,
	},
	{
		Tag:                "ficus",
		Families:           []string{"moraceae"},
		Genera:             []string{"ficus"},
		Keywords:           []string{"fiddle leaf", "rubber plant", "weeping fig", "ficus", "fig"},
		ScientificPatterns: []string{"ficus"},
		Color:              "#2E7D32",
		AltColors:          []string{"#4E342E", "#8D6E63"},
		BaseConfidence:     0.85,
		Description:        "Woody tree with broad leathery leaves",
		WateringDays:       7,
		FertilizingDays:    30,
	},
	{
		Tag:                "prayer_plant",
		Families:           []string{"marantaceae"},
		Genera:             []string{"calathea", "maranta", "goeppertia", "ctenanthe", "stromanthe"},
		Keywords:           []string{"prayer plant", "calathea", "rattlesnake plant", "peacock plant"},
		ScientificPatterns: []string{"calathea", "maranta", "goeppertia"},
		Color:              "#00695C",
		AltColors:          []string{"#AD1457", "#C5E1A5"},
		BaseConfidence:     0.8,
		Description:        "Patterned leaves that fold up at night",
		WateringDays:       5,
		FertilizingDays:    30,
	},
	{
		Tag:                "orchid",
		Families:           []string{"orchidaceae"},
		Genera:             []string{"phalaenopsis", "dendrobium", "cattleya", "oncidium", "vanda"},
		Keywords:           []string{"orchid", "moth orchid"},
		ScientificPatterns: []string{"phalaenopsis", "dendrobium", "cattleya"},
		Color:              "#CE93D8",
		AltColors:          []string{"#F8BBD0", "#FFFFFF"},
		BaseConfidence:     0.85,
		Description:        "Epiphyte with long-lasting flower spikes",
		WateringDays:       7,
		FertilizingDays:    14,
	},
	{
		Tag:                "palm",
		Families:           []string{"arecaceae"},
		Genera:             []string{"chamaedorea", "dypsis", "howea", "rhapis", "livistona"},
		Keywords:           []string{"palm", "parlor palm", "areca", "kentia"},
		ScientificPatterns: []string{"chamaedorea", "dypsis lutescens", "howea"},
		Color:              "#558B2F",
		AltColors:          []string{"#8BC34A"},
		BaseConfidence:     0.8,
		Description:        "Feathery fronds on slender canes",
		WateringDays:       7,
		FertilizingDays:    30,
	},
	{
		Tag:                "ivy",
		Families:           []string{"araliaceae"},
		Genera:             []string{"hedera", "schefflera", "fatsia"},
		Keywords:           []string{"ivy", "english ivy", "umbrella plant", "schefflera"},
		ScientificPatterns: []string{"hedera helix", "schefflera"},
		Color:              "#2E7D32",
		AltColors:          []string{"#DCE775"},
		BaseConfidence:     0.75,
		Description:        "Lobed leaves on trailing or shrubby stems",
		WateringDays:       6,
		FertilizingDays:    30,
	},
	{
		Tag:                "herb",
		Families:           []string{"lamiaceae"},
		Genera:             []string{"ocimum", "mentha", "salvia", "rosmarinus", "thymus", "origanum"},
		Keywords:           []string{"basil", "mint", "rosemary", "thyme", "oregano", "herb"},
		ScientificPatterns: []string{"ocimum basilicum", "mentha", "salvia rosmarinus"},
		Color:              "#8BC34A",
		AltColors:          []string{"#689F38"},
		BaseConfidence:     0.75,
		Description:        "Aromatic kitchen herb that likes sun",
		WateringDays:       3,
		FertilizingDays:    21,
	},
	{
		Tag:             GenericTag,
		Color:           "#4CAF50",
		AltColors:       []string{"#81C784", "#388E3C"},
		BaseConfidence:  0.3,
		Description:     "Houseplant",
		WateringDays:    7,
		FertilizingDays: 30,
	},
}

// Archetypes returns the archetype table in match order. The generic
// fallback is always last.
func Archetypes() []Archetype {
	out := make([]Archetype, len(archetypes))
	for i, a := range archetypes {
		out[i] = a.clone()
	}
	return out
}

// Lookup returns the archetype with the given tag.
func Lookup(tag string) (Archetype, bool) {
	for _, a := range archetypes {
		if a.Tag == tag {
			return a.clone(), true
		}
	}
	return Archetype{}, false
}

// Generic returns the fallback archetype.
func Generic() Archetype {
	return archetypes[len(archetypes)-1].clone()
}

// clone copies a with its match sets, so callers never share backing arrays
// with the package table.
func (a Archetype) clone() Archetype {
	a.Families = slices.Clone(a.Families)
	a.Genera = slices.Clone(a.Genera)
	a.Keywords = slices.Clone(a.Keywords)
	a.ScientificPatterns = slices.Clone(a.ScientificPatterns)
	a.AltColors = slices.Clone(a.AltColors)
	return a
}

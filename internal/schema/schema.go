package schema

import "fmt"

// Dimension représente un critère noté du questionnaire (ex: propreté, accueil).
type Dimension struct {
	Key   string // clé technique (colonne scores / champ JSON)
	Label string // libellé affiché dans les rapports
}

// Tier est la description qualitative d'une note (libellé + couleur de sévérité).
type Tier struct {
	Label string
	Color string
}

// RatingSchema déclare les dimensions valides d'un déploiement et la table
// de correspondance note → appréciation. Figé pour toute la durée de vie du
// service : l'agrégateur et le composeur de rapports sont paramétrés par ce
// schéma, jamais codés en dur.
type RatingSchema struct {
	Name       string
	Dimensions []Dimension
	values     map[int]Tier
}

// NeutralTier est l'appréciation d'une note absente. Jamais une erreur.
var NeutralTier = Tier{Label: "—", Color: "#6b7280"}

// Échelle continue 1..5 (questionnaires chambre).
var fiveTiers = map[int]Tier{
	5: {Label: "Excellent", Color: "#10b981"},
	4: {Label: "Très bien", Color: "#14b8a6"},
	3: {Label: "Bien", Color: "#f59e0b"},
	2: {Label: "Moyen", Color: "#f97316"},
	1: {Label: "Faible", Color: "#ef4444"},
}

// Échelle restreinte {1,3,5} (questionnaires opérationnels).
var threeTiers = map[int]Tier{
	5: {Label: "Excellent", Color: "#10b981"},
	3: {Label: "Bien", Color: "#f59e0b"},
	1: {Label: "Faible", Color: "#ef4444"},
}

var variants = map[string]*RatingSchema{
	"standard": {
		Name: "standard",
		Dimensions: []Dimension{
			{Key: "cleanliness", Label: "Propreté"},
			{Key: "reception", Label: "Accueil"},
			{Key: "services", Label: "Services"},
		},
		values: fiveTiers,
	},
	"extended": {
		Name: "extended",
		Dimensions: []Dimension{
			{Key: "reception", Label: "Accueil"},
			{Key: "cleanliness", Label: "Propreté"},
			{Key: "comfort", Label: "Confort"},
			{Key: "facilities", Label: "Équipements"},
			{Key: "location", Label: "Emplacement"},
			{Key: "value", Label: "Rapport qualité/prix"},
		},
		values: fiveTiers,
	},
	"operations": {
		Name: "operations",
		Dimensions: []Dimension{
			{Key: "internet", Label: "Internet"},
			{Key: "maintenance", Label: "Maintenance"},
			{Key: "reception", Label: "Accueil"},
			{Key: "bathroom", Label: "Salle de bain"},
			{Key: "laundry", Label: "Blanchisserie"},
			{Key: "security", Label: "Sécurité"},
			{Key: "minimarket", Label: "Supérette"},
			{Key: "lobby", Label: "Hall"},
			{Key: "restaurant", Label: "Restaurant"},
			{Key: "cleanliness", Label: "Propreté"},
		},
		values: threeTiers,
	},
}

// Variant retourne le schéma de notation d'un déploiement.
func Variant(name string) (*RatingSchema, error) {
	s, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("variante de schéma inconnue: %q", name)
	}
	return s, nil
}

// IsValidValue vérifie qu'une note appartient au domaine du schéma.
func (s *RatingSchema) IsValidValue(v int) bool {
	_, ok := s.values[v]
	return ok
}

// Describe retourne l'appréciation d'une note. Une note absente (nil) donne
// l'appréciation neutre, jamais une erreur.
func (s *RatingSchema) Describe(v *int) Tier {
	if v == nil {
		return NeutralTier
	}
	if t, ok := s.values[*v]; ok {
		return t
	}
	return NeutralTier
}

// DescribeMean retourne l'appréciation d'une moyenne en l'arrondissant à la
// note valide la plus proche du schéma.
func (s *RatingSchema) DescribeMean(mean *float64) Tier {
	if mean == nil {
		return NeutralTier
	}
	var best int
	bestDist := -1.0
	for v := range s.values {
		d := *mean - float64(v)
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && v > best) {
			best = v
			bestDist = d
		}
	}
	return s.values[best]
}

// HasDimension indique si une clé fait partie du schéma.
func (s *RatingSchema) HasDimension(key string) bool {
	for _, d := range s.Dimensions {
		if d.Key == key {
			return true
		}
	}
	return false
}

package schema

// Feature names a single economic indicator.
type Feature string

func (f Feature) String() string { return string(f) }

const (
	// Prosperity pillars used by every deployed model.
	SafetySecurity   Feature = "SafetySecurity"
	Governance       Feature = "Governance"
	EconomicQuality  Feature = "EconomicQuality"
	LivingConditions Feature = "LivingConditions"

	// Additional pillars collected by the full deployments.
	PersonalFreedom            Feature = "PersonalFreedom"
	SocialCapital              Feature = "SocialCapital"
	InvestmentEnvironment      Feature = "InvestmentEnvironment"
	EnterpriseConditions       Feature = "EnterpriseConditions"
	MarketAccessInfrastructure Feature = "MarketAccessInfrastructure"
	Health                     Feature = "Health"
	Education                  Feature = "Education"
	NaturalEnvironment         Feature = "NaturalEnvironment"
)

// Default indicator domain shared by the built-in schemas.
const (
	DefaultMin = 0.0
	DefaultMax = 10.0
)

func required(f Feature, desc string) FeatureSpec {
	return FeatureSpec{Name: f, Description: desc, Required: true, Min: DefaultMin, Max: DefaultMax}
}

func optional(f Feature, desc string) FeatureSpec {
	return FeatureSpec{Name: f, Description: desc, Default: 0, Min: DefaultMin, Max: DefaultMax}
}

// Core is the four-indicator schema the scaler and centroids were fitted
// with in the reference deployment. Every indicator is required.
func Core() *Schema {
	s, _ := New("core", []FeatureSpec{
		required(SafetySecurity, "Tingkat Keamanan dan Keselamatan"),
		required(Governance, "Tata Kelola Pemerintahan"),
		required(EconomicQuality, "Kualitas Ekonomi"),
		required(LivingConditions, "Kondisi Kehidupan"),
	})
	return s
}

// Full is the twelve-pillar schema. Only the four core pillars are required;
// deployments that collect a subset leave the rest at their default.
func Full() *Schema {
	s, _ := New("full", []FeatureSpec{
		required(SafetySecurity, "Tingkat Keamanan dan Keselamatan"),
		optional(PersonalFreedom, "Kebebasan Pribadi"),
		required(Governance, "Tata Kelola Pemerintahan"),
		optional(SocialCapital, "Modal Sosial"),
		optional(InvestmentEnvironment, "Lingkungan Investasi"),
		optional(EnterpriseConditions, "Kondisi Usaha"),
		optional(MarketAccessInfrastructure, "Akses Pasar dan Infrastruktur"),
		required(EconomicQuality, "Kualitas Ekonomi"),
		required(LivingConditions, "Kondisi Kehidupan"),
		optional(Health, "Kesehatan"),
		optional(Education, "Pendidikan"),
		optional(NaturalEnvironment, "Lingkungan Alam"),
	})
	return s
}

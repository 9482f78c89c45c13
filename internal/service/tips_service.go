package service

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
)

// generalTips are always included in every tips response.
var generalTips = []string{
	"Stay aware of your surroundings at all times",
	"Keep emergency contacts readily available",
	"Share your location with trusted contacts when traveling",
	"Stay in well-lit and populated areas when possible",
}

// levelTips are keyed by safety level.
var levelTips = map[domain.SafetyLevel][]string{
	domain.LevelGreen: {
		"This area is generally safe, but basic precautions are still recommended",
		"Normal vigilance is sufficient in this area",
		"Enjoy your activities while maintaining standard awareness",
	},
	domain.LevelYellow: {
		"Moderate caution is advised in this area",
		"Avoid walking alone at night if possible",
		"Keep valuables concealed and secure",
		"Stay in well-lit and populated areas",
	},
	domain.LevelRed: {
		"Extra vigilance is strongly recommended",
		"Avoid traveling alone, especially after dark",
		"Consider alternative routes or transportation",
		"Keep in constant contact with someone who knows your whereabouts",
		"Avoid displaying valuable items in public",
	},
}

// factorTips are keyed by the exact factor names in riskFactorCatalog.
var factorTips = map[string][]string{
	"Poorly lit areas": {
		"Use a flashlight or phone light in dark areas",
		"Stick to main roads with proper lighting",
		"Travel in groups when possible",
	},
	"High pedestrian traffic": {
		"Keep your wallet/purse secure and close to your body",
		"Be aware of pickpockets in crowded areas",
		"Avoid distractions like using phone in very crowded places",
	},
	"Proximity to transit hubs": {
		"Be extra vigilant around bus and train stations",
		"Secure your luggage and personal belongings",
		"Pre-plan your route to minimize waiting time",
	},
	"Entertainment venues": {
		"Consume alcohol responsibly if visiting bars/clubs",
		"Never leave drinks unattended",
		"Plan your return transportation in advance",
	},
	"Commercial activity": {
		"Keep shopping bags close and monitored",
		"Avoid displaying large amounts of cash",
		"Be cautious in market areas with dense crowds",
	},
	"Residential density": {
		"Check if your building has functioning security measures",
		"Lock doors and windows properly",
		"Be aware of your neighbors and report suspicious activity",
	},
	"Previous incidents": {
		"Check local news for recent crime patterns in this area",
		"Avoid areas with repeated criminal activity",
		"Follow police advisories for this location",
	},
	"School/college proximity": {
		"Be alert during opening and closing hours when crowds gather",
		"Watch for traffic congestion during school rush hours",
		"Report suspicious individuals loitering near educational institutions",
	},
}

// timeTips are keyed by time-of-day bucket.
var timeTips = map[string][]string{
	"night": {
		"Consider using private transportation rather than walking",
		"Inform someone of your expected arrival time",
		"Avoid poorly lit shortcuts",
	},
	"morning": {
		"Morning rush hour may create opportunities for pickpockets",
		"Be cautious at ATMs during early banking hours",
		"Watch for traffic congestion around schools and offices",
	},
	"afternoon": {
		"Be cautious in crowded shopping areas during peak hours",
		"Stay hydrated and watch for heat-related health issues",
		"Be alert for potential scams in tourist areas",
	},
	"evening": {
		"Prefer well-traveled routes after sunset",
		"Keep your phone charged for emergencies",
		"Avoid displaying valuable electronics in public",
	},
}

// TipsService composes safety tips from the fixed text pools.
type TipsService struct {
	safetySvc *SafetyService
	clock     clockwork.Clock
}

// NewTipsService creates a new tips service
func NewTipsService(safetySvc *SafetyService, clock clockwork.Clock) *TipsService {
	return &TipsService{safetySvc: safetySvc, clock: clock}
}

// SafetyTips builds the tips response for a ward. hour may be nil, in which
// case the clock's current hour is used.
func (s *TipsService) SafetyTips(wardID string, hour *int) (domain.SafetyTips, error) {
	h := s.clock.Now().Hour()
	if hour != nil {
		h = *hour
	}

	set, err := s.safetySvc.Predict(h)
	if err != nil {
		return domain.SafetyTips{}, err
	}

	var ward *domain.WardPrediction
	for i := range set.Wards {
		if set.Wards[i].WardID == wardID {
			ward = &set.Wards[i]
			break
		}
	}
	if ward == nil {
		return domain.SafetyTips{}, fmt.Errorf("%w: no data available for ward %s", domain.ErrNotFound, wardID)
	}

	specific := make([]string, 0, 8)
	specific = append(specific, levelTips[ward.SafetyLevel]...)
	for _, factor := range ward.RiskFactors {
		specific = append(specific, factorTips[factor]...)
	}

	return domain.SafetyTips{
		WardID:       wardID,
		WardName:     ward.Name,
		SafetyLevel:  ward.SafetyLevel,
		GeneralTips:  generalTips,
		SpecificTips: specific,
		TimeTips:     timeTips[timeBucket(h)],
	}, nil
}

// timeBucket names the tips bucket an hour falls into.
func timeBucket(hour int) string {
	switch {
	case hour < 6:
		return "night"
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

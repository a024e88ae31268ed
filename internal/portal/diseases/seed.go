package diseases

import (
	"encoding/json"
	"errors"
	"log/slog"

	"gorm.io/gorm"
)

type seedDisease struct {
	Name        string
	Category    string
	Description string
	Symptoms    []string
	Treatments  []string
	Prevention  string
}

var seedDiseases = []seedDisease{
	{
		Name:        "Varicose Veins",
		Category:    "venous",
		Description: "Enlarged, twisted veins that most often appear in the legs when valves inside the veins weaken and blood pools instead of flowing back to the heart.",
		Symptoms:    []string{"Bulging blue or purple veins", "Aching or heavy legs", "Swelling around the ankles", "Itching around the affected vein", "Muscle cramping at night"},
		Treatments:  []string{"Compression stockings", "Sclerotherapy", "Endovenous laser ablation", "Ambulatory phlebectomy"},
		Prevention:  "Regular exercise, maintaining a healthy weight, elevating the legs and avoiding long periods of standing or sitting all reduce the risk.",
	},
	{
		Name:        "Deep Vein Thrombosis",
		Category:    "venous",
		Description: "A blood clot that forms in a deep vein, usually in the leg. Part of the clot can break loose and travel to the lungs, causing a pulmonary embolism.",
		Symptoms:    []string{"Swelling in one leg", "Cramping pain starting in the calf", "Red or discolored skin", "Warmth in the affected area"},
		Treatments:  []string{"Anticoagulant medication", "Thrombolytic therapy", "Compression stockings", "Inferior vena cava filter in selected cases"},
		Prevention:  "Move regularly on long journeys, stay hydrated, and follow prophylaxis guidance after surgery.",
	},
	{
		Name:        "Chronic Venous Insufficiency",
		Category:    "venous",
		Description: "A long-term condition in which leg veins cannot pump enough blood back to the heart, causing blood to pool in the lower limbs.",
		Symptoms:    []string{"Leg swelling that worsens through the day", "Leathery or discolored skin near the ankles", "Venous ulcers", "Tight feeling in the calves"},
		Treatments:  []string{"Compression therapy", "Leg elevation", "Vein ablation procedures", "Wound care for ulcers"},
		Prevention:  "Treat varicose veins early, exercise the calf muscles and avoid prolonged immobility.",
	},
	{
		Name:        "Spider Veins",
		Category:    "venous",
		Description: "Small, damaged veins visible on the surface of the legs or face. Usually painless and treated for cosmetic reasons, but can signal underlying venous disease.",
		Symptoms:    []string{"Thin red, blue or purple web-like lines on the skin", "Occasional mild burning or itching"},
		Treatments:  []string{"Sclerotherapy", "Surface laser therapy", "Compression stockings"},
		Prevention:  "Sun protection, regular movement and compression wear during long standing periods help limit new spider veins.",
	},
	{
		Name:        "Superficial Thrombophlebitis",
		Category:    "venous",
		Description: "Inflammation of a vein just under the skin caused by a small blood clot, most common after intravenous catheter use or in varicose veins.",
		Symptoms:    []string{"A red, tender cord along a vein", "Localized swelling and warmth", "Pain that worsens with pressure"},
		Treatments:  []string{"Warm compresses", "Anti-inflammatory medication", "Compression", "Anticoagulation when the clot extends"},
		Prevention:  "Rotate IV sites promptly and treat varicose veins that repeatedly inflame.",
	},
	{
		Name:        "Peripheral Artery Disease",
		Category:    "arterial",
		Description: "Narrowing of the arteries that carry blood to the limbs, usually from atherosclerosis, reducing blood flow to the legs during activity.",
		Symptoms:    []string{"Leg pain when walking that eases at rest", "Cold lower leg or foot", "Slow-healing sores on toes or feet", "Weak pulse in the legs"},
		Treatments:  []string{"Supervised exercise programs", "Antiplatelet and statin therapy", "Angioplasty", "Bypass surgery in severe cases"},
		Prevention:  "Stop smoking, control blood pressure, cholesterol and diabetes, and walk daily.",
	},
}

// Seed inserts the disease library entries that are not already present.
func Seed(db *gorm.DB) error {
	seeded := 0

	for _, sd := range seedDiseases {
		var existing Disease
		err := db.Where("name = ?", sd.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		symptoms, err := json.Marshal(sd.Symptoms)
		if err != nil {
			return err
		}
		treatments, err := json.Marshal(sd.Treatments)
		if err != nil {
			return err
		}

		entry := Disease{
			Name:        sd.Name,
			Category:    sd.Category,
			Description: sd.Description,
			Symptoms:    symptoms,
			Treatments:  treatments,
			Prevention:  sd.Prevention,
		}
		if err := db.Create(&entry).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		slog.Info("seeded disease library", "new", seeded, "total", len(seedDiseases))
	}
	return nil
}

package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Deals
	AddDeal       string `yaml:"add_deal"`
	EditDeal      string `yaml:"edit_deal"`
	DeleteDeal    string `yaml:"delete_deal"`
	MoveDealLeft  string `yaml:"move_deal_left"`
	MoveDealRight string `yaml:"move_deal_right"`
	MoveDealUp    string `yaml:"move_deal_up"`
	MoveDealDown  string `yaml:"move_deal_down"`
	ViewDeal      string `yaml:"view_deal"`

	// Navigation
	PrevStage string `yaml:"prev_stage"`
	NextStage string `yaml:"next_stage"`
	PrevDeal  string `yaml:"prev_deal"`
	NextDeal  string `yaml:"next_deal"`

	// Other
	SaveForm string `yaml:"save_form"`
	Reload   string `yaml:"reload"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Deals
		AddDeal:       "a",
		EditDeal:      "e",
		DeleteDeal:    "x",
		MoveDealLeft:  "H",
		MoveDealRight: "L",
		MoveDealUp:    "K",
		MoveDealDown:  "J",
		ViewDeal:      "enter",

		// Navigation
		PrevStage: "h",
		NextStage: "l",
		PrevDeal:  "k",
		NextDeal:  "j",

		// Other
		SaveForm: "ctrl+s",
		Reload:   "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.AddDeal == "" {
		k.AddDeal = defaults.AddDeal
	}
	if k.EditDeal == "" {
		k.EditDeal = defaults.EditDeal
	}
	if k.DeleteDeal == "" {
		k.DeleteDeal = defaults.DeleteDeal
	}
	if k.MoveDealLeft == "" {
		k.MoveDealLeft = defaults.MoveDealLeft
	}
	if k.MoveDealRight == "" {
		k.MoveDealRight = defaults.MoveDealRight
	}
	if k.MoveDealUp == "" {
		k.MoveDealUp = defaults.MoveDealUp
	}
	if k.MoveDealDown == "" {
		k.MoveDealDown = defaults.MoveDealDown
	}
	if k.ViewDeal == "" {
		k.ViewDeal = defaults.ViewDeal
	}
	if k.PrevStage == "" {
		k.PrevStage = defaults.PrevStage
	}
	if k.NextStage == "" {
		k.NextStage = defaults.NextStage
	}
	if k.PrevDeal == "" {
		k.PrevDeal = defaults.PrevDeal
	}
	if k.NextDeal == "" {
		k.NextDeal = defaults.NextDeal
	}
	if k.SaveForm == "" {
		k.SaveForm = defaults.SaveForm
	}
	if k.Reload == "" {
		k.Reload = defaults.Reload
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}

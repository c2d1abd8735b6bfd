package core

import "encoding/json"

// GroupType is the WP Cafe selection widget for an option group.
type GroupType string

const (
	GroupSingleChoice GroupType = "radio"
	GroupMultiChoice  GroupType = "checkbox"
)

// Option is one selectable extra with its price delta as text.
type Option struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

// OptionGroup is a named set of options attached to a menu item.
type OptionGroup struct {
	Type     GroupType `json:"type"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`
	Options  []Option  `json:"options"`
}

// Groups returns the option groups for the add-on set, or nil for none.
// A fresh slice is returned on each call.
func (a AddonSet) Groups() []OptionGroup {
	switch a {
	case AddonsProtein:
		return []OptionGroup{
			{
				Type:     GroupSingleChoice,
				Label:    "Add Protein",
				Required: false,
				Options: []Option{
					{Label: "None", Price: "0"},
					{Label: "Grilled Chicken", Price: "3.00"},
					{Label: "Steak", Price: "4.00"},
					{Label: "Salmon", Price: "5.00"},
				},
			},
		}
	case AddonsCheesesteak:
		return []OptionGroup{
			{
				Type:     GroupSingleChoice,
				Label:    "Choose Your Cheese",
				Required: true,
				Options: []Option{
					{Label: "American", Price: "0"},
					{Label: "Provolone", Price: "0"},
					{Label: "Cheese Whiz", Price: "0"},
				},
			},
			{
				Type:     GroupMultiChoice,
				Label:    "Extras",
				Required: false,
				Options: []Option{
					{Label: "Extra Cheese", Price: "1.50"},
					{Label: "Mushrooms", Price: "1.00"},
					{Label: "Hot Peppers", Price: "0.50"},
					{Label: "Sweet Peppers", Price: "0.50"},
				},
			},
		}
	default:
		return nil
	}
}

// EncodeGroups serializes option groups as a JSON array.
// An empty group list encodes as the empty string.
func EncodeGroups(groups []OptionGroup) string {
	if len(groups) == 0 {
		return ""
	}
	b, err := json.Marshal(groups)
	if err != nil {
		// Only strings and bools are marshalled; this cannot fail.
		return ""
	}
	return string(b)
}

// DecodeGroups parses the add-on metadata column back into option groups.
func DecodeGroups(s string) ([]OptionGroup, error) {
	if s == "" {
		return nil, nil
	}
	var groups []OptionGroup
	if err := json.Unmarshal([]byte(s), &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

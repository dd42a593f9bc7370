package models

// Icon is the closed set of icons the dashboard knows how to render.
type Icon int

const (
	IconUnknown Icon = iota
	IconDollarSign
	IconUsers
	IconShoppingCart
	IconTrendingUp
	IconCreditCard
	IconPercent
	IconLayoutDashboard
	IconBarChart3
	IconSettings
	IconFileText
	IconMessageSquare
	IconMenu
	IconX
)

var iconNames = map[Icon]string{
	IconDollarSign:      "DollarSign",
	IconUsers:           "Users",
	IconShoppingCart:    "ShoppingCart",
	IconTrendingUp:      "TrendingUp",
	IconCreditCard:      "CreditCard",
	IconPercent:         "Percent",
	IconLayoutDashboard: "LayoutDashboard",
	IconBarChart3:       "BarChart3",
	IconSettings:        "Settings",
	IconFileText:        "FileText",
	IconMessageSquare:   "MessageSquare",
	IconMenu:            "Menu",
	IconX:               "X",
}

var iconsByName = func() map[string]Icon {
	m := make(map[string]Icon, len(iconNames))
	for icon, name := range iconNames {
		m[name] = icon
	}
	return m
}()

// ParseIcon maps a dataset icon name to an Icon, returning IconUnknown for
// names outside the set.
func ParseIcon(name string) Icon {
	return iconsByName[name]
}

// Or returns fallback when i is unknown.
func (i Icon) Or(fallback Icon) Icon {
	if i == IconUnknown {
		return fallback
	}
	return i
}

func (i Icon) String() string {
	if name, ok := iconNames[i]; ok {
		return name
	}
	return "Unknown"
}

func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Icon) UnmarshalText(text []byte) error {
	*i = ParseIcon(string(text))
	return nil
}

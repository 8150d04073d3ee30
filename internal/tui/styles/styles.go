package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type ColorType struct {
	value lipgloss.Color
}

func (c ColorType) Value() lipgloss.Color {
	return c.value
}

var (
	PrimaryColor   = ColorType{lipgloss.Color("#D12182")}
	SecondaryColor = ColorType{lipgloss.Color("#874BFD")}
	AccentColor    = ColorType{lipgloss.Color("#FFFFFF")}
	MutedColor     = ColorType{lipgloss.Color("#4A4A4A")}

	RedColor  = ColorType{lipgloss.Color("9")}
	AquaColor = ColorType{lipgloss.Color("86")}
	LimeColor = ColorType{lipgloss.Color("#00FF77")}

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor.Value())

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	AppStyle = lipgloss.NewStyle().
			Padding(1, 2)

	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor.Value()).
			Padding(1, 3)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor.Value())

	CardSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#999999"))

	ContainerStyle = lipgloss.NewStyle().
			Padding(2).
			Margin(2, 0, 2, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#7D56F4")).
				Bold(true).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	KeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AquaColor.Value())

	MessageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			PaddingLeft(2)

	MessageMineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#C0A8F0")).
				PaddingLeft(2)

	UsernameStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor.Value()).
			Bold(true)

	CounterpartStyle = lipgloss.NewStyle().
				Foreground(AquaColor.Value()).
				Bold(true)

	OfferCardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(LimeColor.Value()).
			Padding(0, 2).
			MarginLeft(2)

	ProductCardStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(SecondaryColor.Value()).
				Padding(0, 2).
				MarginLeft(2)

	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(LimeColor.Value()).
			Padding(0, 1).
			MarginLeft(2)

	DeclinedBannerStyle = lipgloss.NewStyle().
				Foreground(RedColor.Value()).
				MarginLeft(2)

	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(RedColor.Value()).
			Padding(0, 1)

	DotStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8800"))

	CommandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			MarginTop(1)

	InputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			MarginTop(1)

	NavStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8800"))

	MutedTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			MarginTop(1)

	StatusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#999999"))

	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(AquaColor.Value())

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(RedColor.Value())

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(LimeColor.Value())

	ListItemTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF"))

	ListItemTitleSelectedStyle = lipgloss.NewStyle().
					Foreground(PrimaryColor.Value()).
					Bold(true)

	ListItemMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#71717a"))

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	InputPromptFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205"))

	InputTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	InputTextFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF"))

	InputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	InputFieldStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor.Value()).
			Padding(0, 1)

	InputFieldFocusedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor.Value()).
				Padding(0, 1)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderButton draws the submit affordance, highlighted when focused.
func RenderButton(label string, focused bool) string {
	if focused {
		return FocusedStyle.Render(fmt.Sprintf("[ %s ]", label))
	}
	return fmt.Sprintf("[ %s ]", BlurredStyle.Render(label))
}

// RenderKeyBinding draws a "Key Action" help fragment.
func RenderKeyBinding(key, action string) string {
	return KeyStyle.Render(key) + HelpStyle.Render(" "+action)
}

package discord

import "github.com/bwmarrin/discordgo"

// options indexes the leaf options of a command by name
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

// commandOptions drills through subcommand groups and subcommands and returns
// the name of the innermost subcommand along with its options
func commandOptions(data discordgo.ApplicationCommandInteractionData) (string, options) {
	opts := data.Options
	subcommand := ""
	for len(opts) == 1 && (opts[0].Type == discordgo.ApplicationCommandOptionSubCommand ||
		opts[0].Type == discordgo.ApplicationCommandOptionSubCommandGroup) {
		subcommand = opts[0].Name
		opts = opts[0].Options
	}

	indexed := make(options, len(opts))
	for _, opt := range opts {
		indexed[opt.Name] = opt
	}
	return subcommand, indexed
}

// String returns the string option value or empty
func (o options) String(name string) string {
	opt, ok := o[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return opt.StringValue()
}

// Int returns the integer option value; ok is false when the option was not given
func (o options) Int(name string) (int, bool) {
	opt, ok := o[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return int(opt.IntValue()), true
}

// Bool returns the boolean option value or false
func (o options) Bool(name string) bool {
	opt, ok := o[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionBoolean {
		return false
	}
	return opt.BoolValue()
}

// BoolPtr returns nil when the option was not given
func (o options) BoolPtr(name string) *bool {
	if _, ok := o[name]; !ok {
		return nil
	}
	v := o.Bool(name)
	return &v
}

// IntPtr returns nil when the option was not given
func (o options) IntPtr(name string) *int {
	v, ok := o.Int(name)
	if !ok {
		return nil
	}
	return &v
}

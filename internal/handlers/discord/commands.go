package discord

import "github.com/bwmarrin/discordgo"

const (
	commandAttack = "attack"
	commandInit   = "init"
	commandHeal   = "heal"
)

var minOne = float64(1)

// Commands returns the slash commands the handler answers
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandAttack,
			Description: "Roll an attack",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "attacker", Description: "Your character", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "target", Description: "Character, monster, or initiative abbreviation"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "weapon", Description: "Weapon to use instead of the equipped one"},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "luck", Description: "Points of luck to burn", MinValue: &minOne},
				{Type: discordgo.ApplicationCommandOptionString, Name: "donor", Description: "Character donating the luck"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "deed", Description: "Mighty deed to attempt"},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "range",
					Description: "Range band for missile attacks",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "close", Value: "close"},
						{Name: "medium", Value: "medium"},
						{Name: "long", Value: "long"},
					},
				},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "action-die", Description: "Which action die to roll (1 is the first)", MinValue: &minOne},
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "mounted", Description: "You are mounted"},
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "target-mounted", Description: "The target is mounted"},
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "charge", Description: "You are charging"},
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "into-melee", Description: "Firing into a melee"},
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "backstab", Description: "Attacking from behind"},
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "trained", Description: "Override weapon training"},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "ac", Description: "Target AC override"},
			},
		},
		{
			Name:        commandInit,
			Description: "Initiative tracker",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a character or monster to the initiative order",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Character or monster name", Required: true},
						{Type: discordgo.ApplicationCommandOptionBoolean, Name: "monster", Description: "Add a monster without a character record"},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "initiative", Description: "Fixed initiative instead of rolling"},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "bonus", Description: "Monster initiative bonus"},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "hp", Description: "Monster hit points", MinValue: &minOne},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "ac", Description: "Monster armor class"},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "next", Description: "Advance to the next turn"},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "Show the initiative order"},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a combatant",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Name or abbreviation", Required: true},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "end", Description: "End the encounter"},
			},
		},
		{
			Name:        commandHeal,
			Description: "Restore hit points",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "target", Description: "Character or monster", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Hit points restored", Required: true, MinValue: &minOne},
			},
		},
	}
}

package discord

import (
	"fmt"
	"strings"

	gamecombat "github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat/attack"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/tables"
	"github.com/KirkDiggler/dcc-bot-discord/internal/services/combat"
	"github.com/bwmarrin/discordgo"
)

const (
	colorHit      = 0x2ecc71
	colorCritical = 0xf1c40f
	colorMiss     = 0x95a5a6
	colorFumble   = 0xe74c3c
	colorInfo     = 0x3498db

	recentLogLines = 5
)

// buildAttackEmbed creates an embed for attack results
func buildAttackEmbed(result *combat.AttackResult) *discordgo.MessageEmbed {
	res := result.Attack

	title := fmt.Sprintf("⚔️ %s attacks", res.Attacker)
	if res.Defender != "" {
		title = fmt.Sprintf("⚔️ %s attacks %s", res.Attacker, res.Defender)
	}

	weapon := "Unarmed"
	if res.Weapon != nil {
		weapon = res.Weapon.Name
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("**%s** with %s", weapon, res.ActionDie),
		Color:       attackColor(res),
		Fields:      []*discordgo.MessageEmbedField{},
	}

	attackRoll := fmt.Sprintf("Natural **%d**%s\nTotal **%d**", res.Natural, formatTerms(res.Terms), res.AttackTotal)
	if res.HasTarget {
		attackRoll += fmt.Sprintf(" vs AC %d", res.TargetAC)
	}
	attackRoll += "\n" + verdict(res)
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "🎲 Attack Roll",
		Value:  attackRoll,
		Inline: true,
	})

	if res.Hit {
		damage := fmt.Sprintf("%s\n= **%d**", strings.TrimPrefix(formatTerms(res.DamageTerms), "\n"), res.Damage)
		if result.Defender != nil && result.DamageDealt != res.Damage {
			damage += fmt.Sprintf(" (%d taken)", result.DamageDealt)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "💥 Damage",
			Value:  damage,
			Inline: true,
		})
	}

	if res.Deed != nil {
		deed := fmt.Sprintf("%s rolled **%d**", res.Deed.Die, res.Deed.Value)
		if res.Deed.Declared {
			outcome := "fails"
			if res.Deed.Success {
				outcome = "succeeds"
			}
			deed += fmt.Sprintf("\n%s %s", deedText(res.Deed), outcome)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🛡️ Deed",
			Value:  deed,
			Inline: true,
		})
	}

	if burn := res.LuckBurn; burn != nil && burn.Consumed > 0 {
		luck := fmt.Sprintf("%s burns %d luck for **%+d**", burn.Source, burn.Consumed, burn.Bonus)
		if burn.Consumed < burn.Requested {
			luck += fmt.Sprintf(" (%d requested)", burn.Requested)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🍀 Luck",
			Value:  luck,
			Inline: true,
		})
	}

	if result.Crit != nil {
		embed.Fields = append(embed.Fields, outcomeField("🎆 Critical", result.Crit))
	}
	if result.Fumble != nil {
		embed.Fields = append(embed.Fields, outcomeField("💢 Fumble", result.Fumble))
	}

	if len(result.Applied) > 0 {
		lines := make([]string, 0, len(result.Applied))
		for _, a := range result.Applied {
			line := fmt.Sprintf("%s is %s", a.Target, a.Label)
			if a.Refreshed {
				line += " (again)"
			}
			lines = append(lines, line)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Conditions",
			Value: strings.Join(lines, "\n"),
		})
	}

	status := []string{standing(result.Attacker)}
	if result.Defender != nil {
		status = append(status, standing(*result.Defender))
	}
	for _, t := range result.Life {
		status = append(status, t.Text)
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "🩸 Status",
		Value: strings.Join(status, "\n"),
	})

	notes := append(append([]string{}, res.Notes...), result.Notes...)
	if len(notes) > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: strings.Join(notes, " • ")}
	}

	return embed
}

func attackColor(res *attack.Result) int {
	switch {
	case res.Fumble:
		return colorFumble
	case res.Critical:
		return colorCritical
	case res.Hit:
		return colorHit
	}
	return colorMiss
}

func verdict(res *attack.Result) string {
	switch {
	case res.Fumble:
		return "💢 **FUMBLE!**"
	case res.Critical:
		return "🎆 **CRITICAL HIT!**"
	case res.Hit && res.Backstab:
		return "🗡️ **BACKSTAB!**"
	case res.Hit:
		return "✅ **HIT!**"
	}
	return "❌ **MISS!**"
}

// formatTerms lists the non-zero modifiers, one per line
func formatTerms(terms []attack.Term) string {
	var b strings.Builder
	for _, t := range terms {
		if t.Value == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%+d %s", t.Value, t.Label)
	}
	return b.String()
}

func deedText(d *attack.DeedResult) string {
	if d.Text != "" {
		return d.Text
	}
	return "Deed"
}

func outcomeField(name string, o *tables.Outcome) *discordgo.MessageEmbedField {
	var b strings.Builder
	fmt.Fprintf(&b, "Table %s, %s", o.Table, o.Die)
	if o.Roll != nil {
		fmt.Fprintf(&b, " rolled %d", o.Roll.Total)
		if o.LuckModifier != 0 {
			fmt.Fprintf(&b, " %+d luck = %d", o.LuckModifier, o.Value)
		}
	}
	if text := o.Text(); text != "" {
		fmt.Fprintf(&b, "\n*%s*", text)
	}
	if o.BonusDamage > 0 {
		fmt.Fprintf(&b, "\n**%d** extra damage", o.BonusDamage)
	}
	if s := o.Save; s != nil {
		result := "failed"
		if s.Passed {
			result = "passed"
		}
		fmt.Fprintf(&b, "\n%s save DC %d: %d, %s", s.Kind, s.DC, s.Total, result)
	}
	return &discordgo.MessageEmbedField{Name: name, Value: b.String()}
}

func standing(hp combat.CombatantHP) string {
	line := fmt.Sprintf("%s: **%d/%d HP**", hp.Name, hp.HP, hp.MaxHP)
	if !hp.Life.IsAlive() {
		line += fmt.Sprintf(" (%s)", hp.Life)
	}
	return line
}

// buildInitiativeEmbed renders the initiative order of a session
func buildInitiativeEmbed(list *combat.InitiativeList) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📋 Initiative, round %d", list.Round),
		Description: initiativeTable(list.Rows),
		Color:       colorInfo,
	}
	if recent := lastLines(list.Log, recentLogLines); len(recent) > 0 {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Recent", Value: strings.Join(recent, "\n")},
		}
	}
	return embed
}

// buildTurnEmbed announces whose turn it is
func buildTurnEmbed(turn *gamecombat.TurnResult, list *combat.InitiativeList) *discordgo.MessageEmbed {
	var b strings.Builder
	if turn.NewRound {
		fmt.Fprintf(&b, "**Round %d begins!**\n", turn.Round)
	}
	if turn.Entry != nil {
		fmt.Fprintf(&b, "▶ It is **%s**'s turn.", turn.Entry.Name)
	}
	if turn.Life != nil {
		fmt.Fprintf(&b, "\n%s", turn.Life.Text)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⏭️ Round %d", turn.Round),
		Description: b.String(),
		Color:       colorInfo,
	}
	if list != nil && len(list.Rows) > 0 {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Initiative", Value: initiativeTable(list.Rows)},
		}
	}
	return embed
}

// buildJoinEmbed reports a combatant entering the initiative order
func buildJoinEmbed(result *combat.AddCombatantResult) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("Initiative **%d**", result.Entry.Initiative)
	if result.Roll != nil && result.Roll.Roll != nil {
		desc = fmt.Sprintf("Initiative %s %+d = **%d**", result.Roll.Roll.Expression, result.Roll.Modifier, result.Roll.Total)
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s joins the fight (%s)", result.Entry.Name, result.Entry.Abbrev),
		Description: desc,
		Color:       colorInfo,
	}
}

// buildHealEmbed reports restored hit points
func buildHealEmbed(result *combat.HealResult) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("%s recovers %d HP and is at **%d/%d HP**", result.Name, result.Healed, result.HP, result.MaxHP)
	if result.Life != nil {
		desc += "\n" + result.Life.Text
	}
	return &discordgo.MessageEmbed{
		Title:       "💚 Healing",
		Description: desc,
		Color:       colorHit,
	}
}

func initiativeTable(rows []gamecombat.Row) string {
	if len(rows) == 0 {
		return "*Nobody is in the fight.*"
	}
	var b strings.Builder
	b.WriteString("```\n")
	for _, row := range rows {
		b.WriteString(row.String())
		b.WriteString("\n")
	}
	b.WriteString("```")
	return b.String()
}

func lastLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat/attack"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"github.com/KirkDiggler/dcc-bot-discord/internal/services/combat"
	"github.com/bwmarrin/discordgo"
)

// Discord drops interactions that are not answered within three seconds
const defaultTimeout = 3 * time.Second

// Handler answers the combat slash commands. The channel an interaction comes
// from is its session.
type Handler struct {
	combatService combat.Service
	timeout       time.Duration
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	CombatService combat.Service
	Timeout       time.Duration
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.CombatService == nil {
		panic("combat service is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Handler{
		combatService: cfg.CombatService,
		timeout:       timeout,
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	for _, cmd := range Commands() {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		log.Printf("Registered command: %s", cmd.Name)
	}
	return nil
}

// HandleInteraction handles slash command interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	sub, opts := commandOptions(data)

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	resp, err := h.route(ctx, &request{
		command:   data.Name,
		sub:       sub,
		channelID: i.ChannelID,
		userID:    interactionUserID(i),
		opts:      opts,
	})
	if err != nil {
		log.Printf("[DISCORD] /%s %s in %s failed: %v", data.Name, sub, i.ChannelID, err)
		resp = errorResponse(err)
	}
	if resp == nil {
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: resp,
	}); err != nil {
		log.Printf("[DISCORD] Failed to respond to /%s: %v", data.Name, err)
	}
}

type request struct {
	command   string
	sub       string
	channelID string
	userID    string
	opts      options
}

// route runs a command and returns its response; unknown commands yield nil
func (h *Handler) route(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	switch req.command {
	case commandAttack:
		return h.handleAttack(ctx, req)
	case commandInit:
		return h.handleInit(ctx, req)
	case commandHeal:
		return h.handleHeal(ctx, req)
	}
	return nil, nil
}

func (h *Handler) handleAttack(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	result, err := h.combatService.ResolveAttack(ctx, attackRequest(req.channelID, req.opts))
	if err != nil {
		return nil, err
	}
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{buildAttackEmbed(result)},
	}, nil
}

func (h *Handler) handleInit(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	switch req.sub {
	case "add":
		result, err := h.combatService.AddCombatant(ctx, addCombatantInput(req))
		if err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildJoinEmbed(result)},
		}, nil

	case "next":
		turn, err := h.combatService.AdvanceTurn(ctx, req.channelID)
		if err != nil {
			return nil, err
		}
		list, err := h.combatService.ListInitiative(ctx, req.channelID)
		if err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildTurnEmbed(turn, list)},
		}, nil

	case "list":
		list, err := h.combatService.ListInitiative(ctx, req.channelID)
		if err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildInitiativeEmbed(list)},
		}, nil

	case "remove":
		entry, err := h.combatService.RemoveCombatant(ctx, req.channelID, req.opts.String("name"))
		if err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("%s leaves the fight.", entry.Name),
		}, nil

	case "end":
		if err := h.combatService.EndEncounter(ctx, req.channelID); err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Content: "The encounter is over.",
		}, nil
	}
	return nil, dnderr.InvalidArgumentf("unknown init subcommand %q", req.sub)
}

func (h *Handler) handleHeal(ctx context.Context, req *request) (*discordgo.InteractionResponseData, error) {
	amount, _ := req.opts.Int("amount")
	result, err := h.combatService.Heal(ctx, &combat.HealInput{
		SessionID: req.channelID,
		Target:    req.opts.String("target"),
		Amount:    amount,
	})
	if err != nil {
		return nil, err
	}
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{buildHealEmbed(result)},
	}, nil
}

// attackRequest maps /attack options onto a service request
func attackRequest(channelID string, opts options) *combat.AttackRequest {
	luck, _ := opts.Int("luck")
	actionDie, ok := opts.Int("action-die")
	if ok && actionDie > 0 {
		actionDie-- // Players count action dice from 1
	}
	deed := opts.String("deed")

	return &combat.AttackRequest{
		SessionID: channelID,
		Attacker:  opts.String("attacker"),
		Defender:  opts.String("target"),
		Weapon:    opts.String("weapon"),
		Donor:     opts.String("donor"),
		AC:        opts.IntPtr("ac"),
		Flags: attack.Flags{
			ActionDie:       actionDie,
			Trained:         opts.BoolPtr("trained"),
			Range:           attack.RangeBand(opts.String("range")),
			Mounted:         opts.Bool("mounted"),
			DefenderMounted: opts.Bool("target-mounted"),
			Charging:        opts.Bool("charge"),
			IntoMelee:       opts.Bool("into-melee"),
			Backstab:        opts.Bool("backstab"),
			Deed:            deed != "",
			DeedText:        deed,
			LuckBurn:        luck,
		},
	}
}

func addCombatantInput(req *request) *combat.AddCombatantInput {
	bonus, _ := req.opts.Int("bonus")
	hp, _ := req.opts.Int("hp")
	ac, _ := req.opts.Int("ac")
	return &combat.AddCombatantInput{
		SessionID:       req.channelID,
		ChannelID:       req.channelID,
		Name:            req.opts.String("name"),
		Owner:           req.userID,
		Monster:         req.opts.Bool("monster"),
		Initiative:      req.opts.IntPtr("initiative"),
		InitiativeBonus: bonus,
		HP:              hp,
		AC:              ac,
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// userMessage is what a player sees for err; internal failures stay in the log
func userMessage(err error) string {
	switch dnderr.GetCode(err) {
	case dnderr.CodeNotFound,
		dnderr.CodeInvalidArgument,
		dnderr.CodeUnknownWeapon,
		dnderr.CodeNotEquipped,
		dnderr.CodeInvalidDonor,
		dnderr.CodeMalformedDice:
		return err.Error()
	}
	return "Something went wrong resolving that, please try again."
}

func errorResponse(err error) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: "❌ " + userMessage(err),
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

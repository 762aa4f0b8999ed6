// Package telegram is a thin chat frontend over the same tutoring
// pipeline the HTTP API uses. It never talks to the LLM providers
// directly.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"homework-tools/api/internal/extract"
	"homework-tools/api/internal/llm/types"
)

type Parser interface {
	ParseSubmission(ctx context.Context, filePath, text, fileType string) (extract.Parsed, error)
}

type Tutor interface {
	Classify(ctx context.Context, problemText string) types.Classification
	Guidance(ctx context.Context, in types.GuidanceInput) types.Guidance
}

type Router struct {
	Bot       *tgbotapi.BotAPI
	Parser    Parser
	Tutor     Tutor
	UploadDir string
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := *upd.Message

	switch {
	case msg.IsCommand():
		r.handleCommand(msg)
	case len(msg.Photo) > 0:
		r.acceptPhoto(msg)
	case strings.TrimSpace(msg.Text) != "":
		r.acceptText(msg)
	}
}

func (r *Router) handleCommand(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	switch msg.Command() {
	case "start":
		r.send(cid, "Send a photo of a homework problem, or just type it in. I will walk you through it step by step without giving the answer away.")
	case "help":
		r.send(cid, "Photo or text of one problem works best. I reply with a short explanation, the steps to take and hints you can reveal one at a time.")
	default:
		r.send(cid, "Unknown command. Try /help.")
	}
}

func (r *Router) acceptText(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if len(text) < 5 {
		r.send(cid, "That looks too short to be a problem. Send the full text, please.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Second)
	defer cancel()

	parsed, err := r.Parser.ParseSubmission(ctx, "", text, "text")
	if err != nil {
		r.SendError(cid, err)
		return
	}
	r.respond(ctx, cid, parsed)
}

// respond classifies the first detected fragment and replies with
// scaffolded guidance for it. Multi-problem submissions get a note
// about the remaining fragments.
func (r *Router) respond(ctx context.Context, cid int64, parsed extract.Parsed) {
	if len(parsed.DetectedProblems) == 0 || strings.TrimSpace(parsed.DetectedProblems[0].Text) == "" {
		r.send(cid, "I could not read a problem out of that. Try a sharper photo or type the text.")
		return
	}
	problem := parsed.DetectedProblems[0]

	cls := r.Tutor.Classify(ctx, problem.Text)
	g := r.Tutor.Guidance(ctx, types.GuidanceInput{
		ProblemText:     problem.Text,
		Subject:         cls.Subject,
		GradeLevel:      cls.GradeLevel,
		ScaffoldingMode: "moderate",
	})

	r.send(cid, formatGuidance(cls, g, len(parsed.DetectedProblems)))
}

func formatGuidance(cls types.Classification, g types.Guidance, problemCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s / %s (grade %d)\n\n", cls.Subject, cls.Topic, cls.GradeLevel)
	b.WriteString(g.MicroExplanation)

	if len(g.StepBreakdown) > 0 {
		b.WriteString("\n")
		for _, st := range g.StepBreakdown {
			fmt.Fprintf(&b, "\n%d. %s", st.Order, st.Text)
		}
	}
	if len(g.RevealSequence) > 0 {
		fmt.Fprintf(&b, "\n\nHint: %s", g.RevealSequence[0].Content)
	}
	if problemCount > 1 {
		fmt.Fprintf(&b, "\n\nI found %d problems; this covers the first one. Send the others separately for help with them.", problemCount)
	}
	return b.String()
}

func (r *Router) send(cid int64, text string) {
	m := tgbotapi.NewMessage(cid, text)
	if _, err := r.Bot.Send(m); err != nil {
		log.Printf("telegram send: %v", err)
	}
}

func (r *Router) SendError(cid int64, err error) {
	log.Printf("telegram chat %d: %v", cid, err)
	r.send(cid, "Something went wrong on my side. Please try again.")
}

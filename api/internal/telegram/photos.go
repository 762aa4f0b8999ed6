package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"homework-tools/api/internal/util"
)

var httpc = &http.Client{Timeout: 60 * time.Second}

func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID

	// Telegram sends several sizes; the last one is the largest.
	ph := msg.Photo[len(msg.Photo)-1]
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.SendError(cid, err)
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
	data, err := download(url)
	if err != nil {
		r.SendError(cid, err)
		return
	}

	path, err := r.savePhoto(data)
	if err != nil {
		r.SendError(cid, err)
		return
	}

	r.send(cid, "Got it, reading the problem...")

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	parsed, err := r.Parser.ParseSubmission(ctx, path, "", "image")
	if err != nil {
		r.SendError(cid, err)
		return
	}
	r.respond(ctx, cid, parsed)
}

// savePhoto stores the download under the shared upload dir so the
// extraction pipeline reads it the same way API uploads are read.
// Telegram photos are normally JPEG but the magic bytes decide.
func (r *Router) savePhoto(data []byte) (string, error) {
	if err := os.MkdirAll(r.UploadDir, 0o755); err != nil {
		return "", err
	}
	ext := ".jpg"
	if util.SniffMime(data) == "image/png" {
		ext = ".png"
	}
	path := filepath.Join(r.UploadDir, uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func download(url string) ([]byte, error) {
	resp, err := httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	app "fracture-tutor/internal/application"
	"fracture-tutor/internal/container"
	"fracture-tutor/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я тренажёр по поиску переломов на рентгеновских снимках.

Вы размечаете снимок рамками, а я сравниваю вашу разметку с разметкой модели и разбираю ошибки.

📋 Команды:
/check — начать новый снимок
/help — справка
/stats — ваша статистика
/cancel — отменить текущую разметку`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /check и затем рентгеновский снимок
2️⃣ Отметьте переломы рамками: /box x1 y1 x2 y2
   Координаты — проценты от ширины и высоты снимка (0–100), от левого верхнего угла
3️⃣ Укажите тип перелома: /type 1 spiral
4️⃣ Отправьте разметку: /submit

📋 Команды разметки:
/box x1 y1 x2 y2 — добавить рамку
/type n тип — тип перелома рамки n
/notes n текст — заметка к рамке n
/remove n — удалить рамку n
/list — список рамок
/types — известные типы переломов
/submit — сравнить с моделью (без рамок — «переломов нет»)
/revise — открыть последний отправленный снимок и исправить разметку`

	msgAwaitingPhoto   = "📸 Отправьте рентгеновский снимок для разметки."
	msgCancelled       = "❌ Разметка отменена. Отправьте /check для нового снимка."
	msgSendPhoto       = "📸 Отправьте /check и затем снимок, или /help для справки."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Сравниваю вашу разметку с моделью..."
	msgBusy            = "⏳ Предыдущий снимок ещё обрабатывается, подождите."
	msgNoImage         = "📸 Сначала отправьте снимок: /check."
	msgBoxTooSmall     = "⚠️ Рамка слишком маленькая и не сохранена. Попробуйте увеличить её."
	msgNotFound        = "⚠️ Рамка не найдена, проверьте номер в /list."
	msgRemoved         = "🗑 Рамка удалена."
	msgNotesSaved      = "📝 Заметка сохранена."
	msgProcessingError = "⚠️ Не удалось обработать снимок. Попробуйте другое изображение."
	msgCompareError    = "⚠️ Не удалось получить разметку модели. Ваши рамки сохранены, попробуйте /submit ещё раз."
	msgStatsError      = "⚠️ Не удалось собрать статистику."
	msgNothingToRevise = "📭 Нет отправленной разметки для пересмотра. Начните с /check."
)

const downloadTimeout = 30 * time.Second

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	services *container.Container
	client   *http.Client
	log      logrus.FieldLogger
}

// NewBot создаёт нового бота
func NewBot(token string, services *container.Container, log logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithField("account", api.Self.UserName).Info("authorized")

	return &Bot{
		api:      api,
		services: services,
		client:   &http.Client{Timeout: downloadTimeout},
		log:      log,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.services.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.log.WithError(err).WithField("user_id", msg.From.ID).Error("get user")
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	chatID := msg.Chat.ID
	args := msg.CommandArguments()

	switch msg.Command() {
	case "start":
		b.services.AnnotationService.Discard(user.ID)
		if err := b.services.UserService.Reset(ctx, user.ID); err != nil {
			b.log.WithError(err).WithField("user_id", user.ID).Error("reset user")
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		if user.Busy() {
			b.sendMessage(chatID, msgBusy)
			return
		}
		b.services.AnnotationService.Discard(user.ID)
		if _, err := b.services.UserService.BeginCheck(ctx, user.ID, chatID); err != nil {
			b.log.WithError(err).Error("begin check")
		}
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "cancel":
		b.services.AnnotationService.Discard(user.ID)
		if _, err := b.services.UserService.Cancel(ctx, user.ID, chatID); err != nil {
			b.log.WithError(err).Error("cancel")
		}
		b.sendMessage(chatID, msgCancelled)

	case "box":
		b.handleBox(user, chatID, args)

	case "type":
		b.handleType(user, chatID, args)

	case "notes":
		b.handleNotes(user, chatID, args)

	case "remove":
		b.handleRemove(user, chatID, args)

	case "list":
		b.handleList(user, chatID)

	case "types":
		b.sendMessage(chatID, "🦴 Типы переломов: "+formatTypes())

	case "submit":
		b.handleSubmit(ctx, user, chatID)

	case "revise":
		b.handleRevise(ctx, user, chatID)

	case "stats":
		stats, err := b.services.HistoryService.Overall(ctx, user.ID)
		if err != nil {
			b.log.WithError(err).WithField("user_id", user.ID).Error("overall stats")
			b.sendMessage(chatID, msgStatsError)
			return
		}
		b.sendMessage(chatID, formatStats(stats))

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto принимает снимок и открывает разметку
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	if user.Busy() {
		b.sendMessage(msg.Chat.ID, msgBusy)
		return
	}

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.log.WithError(err).WithField("file_id", photo.FileID).Error("download photo")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	_, native, err := b.services.AnnotationService.OpenImage(ctx, user.ID, msg.Chat.ID, photo.FileUniqueID, imageData)
	if err != nil {
		b.log.WithError(err).WithField("user_id", user.ID).Warn("open image")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"image_id": photo.FileUniqueID,
		"width":    native.Width,
		"height":   native.Height,
	}).Debug("image opened")

	b.sendMessage(msg.Chat.ID, fmt.Sprintf(
		"🩻 Снимок получен (%.0f×%.0f). Отмечайте переломы: /box x1 y1 x2 y2 (в процентах). Когда закончите — /submit.",
		native.Width, native.Height))
}

func (b *Bot) handleBox(user *entity.User, chatID int64, args string) {
	from, to, err := parseBox(args)
	if err != nil {
		b.sendMessage(chatID, "⚠️ "+err.Error())
		return
	}

	ann, ok, err := b.services.AnnotationService.DrawBox(user.ID, from, to, app.ChatGrid)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if !ok {
		b.sendMessage(chatID, msgBoxTooSmall)
		return
	}

	drafts, _ := b.services.AnnotationService.List(user.ID)
	b.sendMessage(chatID, fmt.Sprintf("✅ Рамка %d добавлена: x=%.0f y=%.0f %.0f×%.0f. Тип: /type %d <тип>",
		len(drafts), ann.X, ann.Y, ann.Width, ann.Height, len(drafts)))
}

func (b *Bot) handleType(user *entity.User, chatID int64, args string) {
	drafts, err := b.services.AnnotationService.List(user.ID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	id, rest, err := parseIndexed(args, drafts)
	if err != nil {
		b.sendMessage(chatID, "⚠️ "+err.Error())
		return
	}

	t, err := entity.ParseFractureType(rest)
	if err != nil {
		b.sendMessage(chatID, "⚠️ Неизвестный тип перелома. Доступны: "+formatTypes())
		return
	}

	if err := b.services.AnnotationService.SetFractureType(user.ID, id, t); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("🦴 Тип перелома: %s", t))
}

func (b *Bot) handleNotes(user *entity.User, chatID int64, args string) {
	drafts, err := b.services.AnnotationService.List(user.ID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	id, rest, err := parseIndexed(args, drafts)
	if err != nil {
		b.sendMessage(chatID, "⚠️ "+err.Error())
		return
	}

	if err := b.services.AnnotationService.SetNotes(user.ID, id, rest); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMessage(chatID, msgNotesSaved)
}

func (b *Bot) handleRemove(user *entity.User, chatID int64, args string) {
	drafts, err := b.services.AnnotationService.List(user.ID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	id, _, err := parseIndexed(args, drafts)
	if err != nil {
		b.sendMessage(chatID, "⚠️ "+err.Error())
		return
	}

	if err := b.services.AnnotationService.Remove(user.ID, id); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMessage(chatID, msgRemoved)
}

func (b *Bot) handleList(user *entity.User, chatID int64) {
	drafts, err := b.services.AnnotationService.List(user.ID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	native, _ := b.services.AnnotationService.NativeSize(user.ID)
	b.sendMessage(chatID, formatDrafts(drafts, native))
}

// handleSubmit сравнивает разметку с моделью и присылает разбор и снимок с рамками
func (b *Bot) handleSubmit(ctx context.Context, user *entity.User, chatID int64) {
	drafts, err := b.services.AnnotationService.List(user.ID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	b.sendMessage(chatID, msgProcessing)

	out, err := b.services.ComparisonService.Submit(ctx, user.ID, chatID)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			b.sendMessage(chatID, fmt.Sprintf("⚠️ Укажите тип перелома для рамок: %s (/type n тип)", draftNumbers(verr.IDs, drafts)))
			return
		}
		b.log.WithError(err).WithField("user_id", user.ID).Error("submit annotations")
		b.sendMessage(chatID, msgCompareError)
		return
	}

	b.sendMessage(chatID, formatResult(out))

	if len(out.Overlay) > 0 {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "comparison.jpg", Bytes: out.Overlay})
		photo.Caption = "🟦 ваши рамки, 🟥 рамки модели"
		if _, err := b.api.Send(photo); err != nil {
			b.log.WithError(err).Error("send overlay")
		}
	}
}

// handleRevise открывает последнюю отправку для исправления
func (b *Bot) handleRevise(ctx context.Context, user *entity.User, chatID int64) {
	if user.Busy() {
		b.sendMessage(chatID, msgBusy)
		return
	}

	drafts, err := b.services.ComparisonService.Revise(ctx, user.ID, chatID)
	if err != nil {
		if errors.Is(err, entity.ErrNoSubmission) {
			b.sendMessage(chatID, msgNothingToRevise)
			return
		}
		b.replyError(chatID, err)
		return
	}

	native, _ := b.services.AnnotationService.NativeSize(user.ID)
	b.sendMessage(chatID, "✏️ Прошлая разметка восстановлена. Исправьте её и отправьте /submit.\n\n"+formatDrafts(drafts, native))
}

func (b *Bot) replyError(chatID int64, err error) {
	switch {
	case errors.Is(err, entity.ErrNoSession):
		b.sendMessage(chatID, msgNoImage)
	case errors.Is(err, entity.ErrAnnotationNotFound):
		b.sendMessage(chatID, msgNotFound)
	default:
		b.log.WithError(err).Error("annotation command")
		b.sendMessage(chatID, msgProcessingError)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("send message")
	}
}

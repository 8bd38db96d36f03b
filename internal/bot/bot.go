package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/elpanzas912/gastitelegram/internal/charts"
	"github.com/elpanzas912/gastitelegram/internal/errs"
	"github.com/elpanzas912/gastitelegram/internal/service"
)

const helpText = `¡Hola! 👋 Soy tu bot de gastos.

Mandame un gasto en texto libre y lo registro, por ejemplo:
_Cena con amigos 45.50 usd_

Comandos:
/gastos — últimos movimientos y totales por moneda
/resumen — análisis de tus gastos con sugerencias
/consulta <pregunta> — por ejemplo: _cuánto gasté en comida este mes_
/grafico — distribución de gastos por categoría
/ayuda — este mensaje`

// msgApology es la única respuesta visible de los caminos fatales; el
// detalle queda en el log del servidor.
const msgApology = "😔 Algo salió mal, probá de nuevo en un rato."

const msgParseRetry = "🤔 No pude entender el gasto. Probá de nuevo con un monto y una descripción, por ejemplo: \"Taxi al centro 1200 pesos\"."

const msgNotAnExpense = "Eso no parece un gasto, así que no registré nada. Mandame algo como \"Café 3.50 usd\" o /ayuda para ver qué puedo hacer."

// Bot recibe los mensajes de Telegram y los despacha a los flujos del
// servicio. El procesamiento es secuencial: un mensaje se atiende de
// punta a punta antes de sacar el siguiente de la cola.
type Bot struct {
	api     *tgbotapi.BotAPI
	tracker *service.ExpenseTracker
	charts  *charts.Generator
}

func NewBot(token string, tracker *service.ExpenseTracker, chartGen *charts.Generator) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		tracker: tracker,
		charts:  chartGen,
	}, nil
}

// Start corre el bot en modo long polling. Los errores de un mensaje se
// loguean y el loop sigue: ningún comando puede tirar el proceso.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		b.safeHandleUpdate(update)
	}

	return nil
}

// HandleWebhook es el punto de entrada para despliegues serverless.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	b.safeHandleUpdate(update)
	return nil
}

func (b *Bot) safeHandleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("pánico atendiendo un update")
		}
	}()
	b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	message := update.Message
	ctx := context.Background()

	route, payload := dispatch(message.Text)
	logger := log.WithFields(log.Fields{
		"chat": message.Chat.ID,
		"user": message.From.ID,
	})

	switch route {
	case routeNone:
		// vacío o solo espacios: sin respuesta
	case routeHelp:
		b.replyMarkdown(message.Chat.ID, helpText)
	case routeListing:
		b.handleListing(ctx, message.Chat.ID, logger)
	case routeNarrative:
		b.handleNarrative(ctx, message.Chat.ID, logger)
	case routeQuery:
		b.handleQuery(ctx, message.Chat.ID, payload, logger)
	case routeChart:
		b.handleChart(ctx, message.Chat.ID, logger)
	case routeRecord:
		b.handleRecord(ctx, message.Chat.ID, payload, logger)
	}
}

func (b *Bot) handleRecord(ctx context.Context, chatID int64, text string, logger *log.Entry) {
	transaction, err := b.tracker.RecordExpense(ctx, text)
	if err != nil {
		b.replyRecordError(chatID, err, logger)
		return
	}

	b.reply(chatID, fmt.Sprintf("✅ Registrado: %s — %.2f %s (%s)",
		transaction.Description, -transaction.Amount, transaction.Currency, transaction.Category))
}

// replyRecordError traduce cada clase de fallo del registro a su mensaje:
// los blandos piden reformular, los fatales se disculpan y se loguean.
func (b *Bot) replyRecordError(chatID int64, err error, logger *log.Entry) {
	var parseErr *errs.ParseError

	switch {
	case errors.Is(err, errs.ErrNotAnExpense):
		// camino negativo normal, ni siquiera es un warning
		b.reply(chatID, msgNotAnExpense)
	case errors.As(err, &parseErr):
		logger.WithError(err).Debug("salida del LLM descartada")
		b.reply(chatID, msgParseRetry)
	default:
		logger.WithError(err).Error("fallo registrando el gasto")
		b.reply(chatID, msgApology)
	}
}

func (b *Bot) handleListing(ctx context.Context, chatID int64, logger *log.Entry) {
	report, err := b.tracker.ListingReport(ctx)
	if err != nil {
		logger.WithError(err).Error("fallo armando el listado")
		b.reply(chatID, msgApology)
		return
	}
	b.reply(chatID, report)
}

func (b *Bot) handleNarrative(ctx context.Context, chatID int64, logger *log.Entry) {
	summary, err := b.tracker.NarrativeReport(ctx)
	if err != nil {
		logger.WithError(err).Error("fallo armando el resumen")
		b.reply(chatID, msgApology)
		return
	}
	b.reply(chatID, summary)
}

func (b *Bot) handleQuery(ctx context.Context, chatID int64, question string, logger *log.Entry) {
	if question == "" {
		b.reply(chatID, "Decime qué querés saber, por ejemplo: /consulta cuánto gasté en comida este mes")
		return
	}

	answer, err := b.tracker.QueryReport(ctx, question)
	if err != nil {
		logger.WithError(err).Error("fallo resolviendo la consulta")
		b.reply(chatID, msgApology)
		return
	}
	b.reply(chatID, answer)
}

func (b *Bot) handleChart(ctx context.Context, chatID int64, logger *log.Entry) {
	aggregates, err := b.tracker.SpendingAggregates(ctx)
	if err != nil {
		logger.WithError(err).Error("fallo armando el gráfico")
		b.reply(chatID, msgApology)
		return
	}

	// graficamos la moneda con más gasto acumulado
	var top *service.CurrencyAggregate
	for i := range aggregates {
		if top == nil || aggregates[i].Expense > top.Expense {
			top = &aggregates[i]
		}
	}
	if top == nil || top.Expense <= 0 {
		b.reply(chatID, "Todavía no hay gastos para graficar. 📭")
		return
	}

	png, err := b.charts.ExpensePie(*top)
	if err != nil {
		logger.WithError(err).Error("fallo renderizando el gráfico")
		b.reply(chatID, msgApology)
		return
	}
	if png == nil {
		b.reply(chatID, "Todavía no hay gastos para graficar. 📭")
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "gastos.png", Bytes: png})
	photo.Caption = "Distribución de gastos (" + top.Currency + ")"
	if _, err := b.api.Send(photo); err != nil {
		logger.WithError(err).Error("no se pudo enviar el gráfico")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat", chatID).Error("no se pudo enviar la respuesta")
	}
}

func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat", chatID).Error("no se pudo enviar la respuesta")
	}
}

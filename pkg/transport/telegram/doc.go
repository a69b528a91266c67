// Package telegram binds the router to the Telegram Bot API.
//
// The Binding dispatches incoming updates: slash commands (/start,
// /help, /model, /reset) are handled locally, everything else becomes a
// turn. Replies are split into 4096-character chunks and sent in order.
//
// Updates arrive either through long polling (Poller) or a webhook
// (WebhookHandler); both feed the same Binding.
package telegram

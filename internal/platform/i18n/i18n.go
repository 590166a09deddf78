package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	EN Lang = "en"
	RU Lang = "ru"
)

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

// Resolve picks the closest supported language for a POSIX locale string such
// as "ru_RU.UTF-8". Anything unparseable falls back to English.
func Resolve(locale string) Lang {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return EN
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return EN
	}
	_, idx, _ := matcher.Match(tag)
	if supported[idx] == language.Russian {
		return RU
	}
	return EN
}

// Parse accepts "en"/"ru" (any case) and reports whether it was recognized.
func Parse(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case EN:
		return EN, true
	case RU:
		return RU, true
	}
	return EN, false
}

func (l Lang) Toggle() Lang {
	if l == RU {
		return EN
	}
	return RU
}

// T returns the message for key, falling back to English and then to the key.
func (l Lang) T(key string) string {
	if m, ok := messages[l][key]; ok {
		return m
	}
	if m, ok := messages[EN][key]; ok {
		return m
	}
	return key
}

var messages = map[Lang]map[string]string{
	EN: {
		"tab.focus":          "Focus",
		"tab.shop":           "Shop",
		"tab.settings":       "Settings",
		"tab.lab":            "Lab",
		"tab.command":        "Command",
		"host.main":          "New task",
		"focus.niches":       "Niches",
		"focus.today":        "Today's plan",
		"focus.empty":        "No tasks for today. Rest or build?",
		"focus.loading":      "Loading Life OS…",
		"focus.add":          "What needs to be done?",
		"focus.recurring":    "Recurring",
		"focus.retry":        "Could not load. Press r to retry.",
		"focus.breakdown":    "Goal to break down",
		"header.level":       "LVL",
		"header.streak":      "streak",
		"shop.title":         "Shop",
		"shop.owned":         "owned",
		"shop.achievements":  "Achievements",
		"settings.niches":    "Niches",
		"settings.theme":     "Theme",
		"settings.language":  "Language",
		"settings.telegram":  "Telegram",
		"settings.reset":     "Type RESET to wipe everything",
		"lab.hooks":          "Hooks for model",
		"lab.plan":           "Planning brief",
		"lab.image":          "Image file",
		"lab.summary":        "Daily summary",
		"command.windows":    "Posting windows",
		"command.models":     "Models",
		"command.accounts":   "Accounts",
		"status.ready":       "ready",
		"status.synced":      "synced",
		"speech.unsupported": "voice input unavailable",
	},
	RU: {
		"tab.focus":          "Фокус",
		"tab.shop":           "Магазин",
		"tab.settings":       "Настройки",
		"tab.lab":            "Лаборатория",
		"tab.command":        "Штаб",
		"host.main":          "Новая задача",
		"focus.niches":       "Ниши",
		"focus.today":        "План на сегодня",
		"focus.empty":        "На сегодня задач нет. Отдыхаем или строим?",
		"focus.loading":      "Загрузка Life OS…",
		"focus.add":          "Что нужно сделать?",
		"focus.recurring":    "Повторяющаяся",
		"focus.retry":        "Не удалось загрузить. Нажмите r, чтобы повторить.",
		"focus.breakdown":    "Цель для разбивки",
		"header.level":       "УР",
		"header.streak":      "серия",
		"shop.title":         "Магазин",
		"shop.owned":         "куплено",
		"shop.achievements":  "Достижения",
		"settings.niches":    "Ниши",
		"settings.theme":     "Тема",
		"settings.language":  "Язык",
		"settings.telegram":  "Telegram",
		"settings.reset":     "Введите RESET, чтобы стереть всё",
		"lab.hooks":          "Хуки для модели",
		"lab.plan":           "Бриф для плана",
		"lab.image":          "Файл изображения",
		"lab.summary":        "Итог дня",
		"command.windows":    "Окна публикаций",
		"command.models":     "Модели",
		"command.accounts":   "Аккаунты",
		"status.ready":       "готово",
		"status.synced":      "синхронизировано",
		"speech.unsupported": "голосовой ввод недоступен",
	},
}

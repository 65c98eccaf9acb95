// Package i18n локализует служебные строки, которые сервис публикует сам:
// извинение ассистента, подсказки по исправлению ключа, приветствие в чате.
// Полная таблица строк интерфейса живет на клиенте и сюда не входит.
package i18n

import "strings"

// Language представляет код поддерживаемого языка
type Language string

// Поддерживаемые языки
const (
	LangEN Language = "en"
	LangAR Language = "ar"
)

// Ключи служебных строк
const (
	KeyLoginError        = "loginError"
	KeyAssistantGreeting = "assistantGreeting"
	KeyAPIGenericError   = "apiGenericError"
	KeyAPIKeyMissingEnv  = "apiKeyMissingEnv"
	KeyAPIKeyNotSelected = "apiKeyNotSelected"
	KeyAPIKeyInvalid     = "apiKeyInvalid"
)

var translations = map[Language]map[string]string{
	LangEN: {
		KeyLoginError:        "Invalid name or password.",
		KeyAssistantGreeting: "Hello! I am your team assistant. Ask me about the schedule by typing `@assistant` followed by your question.",
		KeyAPIGenericError:   "Sorry, {name}, I couldn't process that request right now. Please try again later. 🙏",
		KeyAPIKeyMissingEnv:  "The assistant is not configured: no API key is set in the environment.",
		KeyAPIKeyNotSelected: "An API key exists but none has been selected for use.",
		KeyAPIKeyInvalid:     "The configured API key was rejected by the assistant service.",
	},
	LangAR: {
		KeyLoginError:        "الاسم أو كلمة المرور غير صحيحة.",
		KeyAssistantGreeting: "مرحباً! أنا مساعد فريقك. اسألني عن الجدول بكتابة `@assistant` متبوعاً بسؤالك.",
		KeyAPIGenericError:   "عذراً، {name}، لم أتمكن من معالجة هذا الطلب الآن. حاول مرة أخرى لاحقاً. 🙏",
		KeyAPIKeyMissingEnv:  "المساعد غير مهيأ: لا يوجد مفتاح API في البيئة.",
		KeyAPIKeyNotSelected: "يوجد مفتاح API لكن لم يتم اختيار أي مفتاح للاستخدام.",
		KeyAPIKeyInvalid:     "رفضت خدمة المساعد مفتاح API المهيأ.",
	},
}

// Translator переводит ключи служебных строк на текущий язык
type Translator struct {
	lang Language
}

// New создает Translator для указанного языка.
// Неизвестные коды языков откатываются на английский.
func New(lang string) *Translator {
	l := Language(lang)
	if _, ok := translations[l]; !ok {
		l = LangEN
	}
	return &Translator{lang: l}
}

// Language возвращает текущий код языка
func (t *Translator) Language() Language {
	return t.lang
}

// Lookup возвращает локализованную строку по ключу с подстановкой плейсхолдеров
// вида {placeholder}. Отсутствующие ключи откатываются на английскую таблицу.
func (t *Translator) Lookup(key string, replacements map[string]string) string {
	s, ok := translations[t.lang][key]
	if !ok {
		s = translations[LangEN][key]
	}
	for k, v := range replacements {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}

// FromAcceptLanguage выбирает язык по префиксу заголовка Accept-Language
func FromAcceptLanguage(header, fallback string) *Translator {
	header = strings.TrimSpace(header)
	if header == "" {
		return New(fallback)
	}
	primary := header
	if i := strings.IndexAny(primary, ",;"); i >= 0 {
		primary = primary[:i]
	}
	if i := strings.Index(primary, "-"); i >= 0 {
		primary = primary[:i]
	}
	primary = strings.ToLower(strings.TrimSpace(primary))
	if _, ok := translations[Language(primary)]; ok {
		return New(primary)
	}
	return New(fallback)
}

package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional values to embed in the message (for example,
// "key" or "source").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates
// reference data entries as {name}.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"missing_key":     "<add> element without a key attribute skipped",
		"missing_value":   "setting {key} has no value attribute and was skipped",
		"overridden":      "setting {key} overrides the value from {source}",
		"already_present": "setting {key} already exists in {source}",
		"no_app_settings": "no appSettings section",
		"duplicate_key":   "duplicate key {key}",
	},
	"ja": {
		"missing_key":     "key 属性のない <add> 要素をスキップしました",
		"missing_value":   "設定 {key} に value 属性がないためスキップしました",
		"overridden":      "設定 {key} は {source} の値を上書きします",
		"already_present": "設定 {key} は既に {source} に存在します",
		"no_app_settings": "appSettings セクションがありません",
		"duplicate_key":   "キー {key} が重複しています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

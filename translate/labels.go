package translate

import (
	"golang.org/x/text/language"
)

// labelSet holds the words printed for docinfo fields and admonitions, keyed
// by node kind name.
type labelSet map[string]string

func (ls labelSet) get(key string) string {
	if v, ok := ls[key]; ok {
		return v
	}
	if v, ok := labelSets[0].labels[key]; ok {
		return v
	}
	return key
}

// labelSets are ordered by preference, English first as the fallback.
var labelSets = []struct {
	tag    language.Tag
	labels labelSet
}{
	{language.English, labelSet{
		"author": "Author", "authors": "Authors", "organization": "Organization",
		"address": "Address", "contact": "Contact", "version": "Version",
		"revision": "Revision", "status": "Status", "date": "Date",
		"copyright": "Copyright", "attention": "Attention!", "caution": "Caution!",
		"danger": "!DANGER!", "error": "Error", "hint": "Hint",
		"important": "Important", "note": "Note", "tip": "Tip", "warning": "Warning",
	}},
	{language.German, labelSet{
		"author": "Autor", "authors": "Autoren", "organization": "Organisation",
		"address": "Adresse", "contact": "Kontakt", "version": "Version",
		"revision": "Revision", "status": "Status", "date": "Datum",
		"copyright": "Copyright", "attention": "Achtung!", "caution": "Vorsicht!",
		"danger": "!GEFAHR!", "error": "Fehler", "hint": "Hinweis",
		"important": "Wichtig", "note": "Bemerkung", "tip": "Tipp", "warning": "Warnung",
	}},
	{language.French, labelSet{
		"author": "Auteur", "authors": "Auteurs", "organization": "Organisation",
		"address": "Adresse", "contact": "Contact", "version": "Version",
		"revision": "Révision", "status": "Statut", "date": "Date",
		"copyright": "Copyright", "attention": "Attention!", "caution": "Avertissement!",
		"danger": "!DANGER!", "error": "Erreur", "hint": "Indication",
		"important": "Important", "note": "Note", "tip": "Astuce", "warning": "Avertissement",
	}},
	{language.Spanish, labelSet{
		"author": "Autor", "authors": "Autores", "organization": "Organización",
		"address": "Dirección", "contact": "Contacto", "version": "Versión",
		"revision": "Revisión", "status": "Estado", "date": "Fecha",
		"copyright": "Copyright", "attention": "¡Atención!", "caution": "¡Precaución!",
		"danger": "¡PELIGRO!", "error": "Error", "hint": "Sugerencia",
		"important": "Importante", "note": "Nota", "tip": "Consejo", "warning": "Aviso",
	}},
	{language.Russian, labelSet{
		"author": "Автор", "authors": "Авторы", "organization": "Организация",
		"address": "Адрес", "contact": "Контакт", "version": "Версия",
		"revision": "Редакция", "status": "Статус", "date": "Дата",
		"copyright": "Права копирования", "attention": "Внимание!", "caution": "Осторожно!",
		"danger": "ОПАСНО!", "error": "Ошибка", "hint": "Совет",
		"important": "Важно", "note": "Примечание", "tip": "Подсказка", "warning": "Предупреждение",
	}},
}

var labelMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(labelSets))
	for _, ls := range labelSets {
		tags = append(tags, ls.tag)
	}
	return language.NewMatcher(tags)
}()

// labelsFor picks the closest supported language, English when nothing
// matches.
func labelsFor(tag language.Tag) labelSet {
	if tag == language.Und {
		return labelSets[0].labels
	}
	_, idx, conf := labelMatcher.Match(tag)
	if conf == language.No {
		return labelSets[0].labels
	}
	return labelSets[idx].labels
}

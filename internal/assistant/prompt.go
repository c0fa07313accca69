package assistant

import "fmt"

// The advisor persona. The assistant answers in Russian regardless of the
// user's input language; the product targets Kazakhstani school and
// university students.
const promptBase = `Ты персональный карьерный помощник для молодых людей в Казахстане. Твоя задача - помогать им с выбором образования, развитием навыков и построением карьеры.

Рекомендуй релевантные олимпиады, конкурсы, волонтёрские программы и университеты. Отвечай на русском языке, будь дружелюбным, мотивирующим и давай конкретные советы. Будь кратким, но информативным (2-4 абзаца).`

const promptNotes = `

Контекст заметок пользователя:
%s

Используй эту информацию для персонализированных советов.`

// systemPrompt splices the user's note context into the advisor persona.
func systemPrompt(notesContext string) string {
	if notesContext == "" {
		return promptBase
	}
	return promptBase + fmt.Sprintf(promptNotes, notesContext)
}

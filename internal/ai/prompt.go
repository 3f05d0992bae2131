package ai

// analystInstruction is the fixed system prompt sent with every
// conversation blob. The report structure and language are pinned here
// so the output stays stable across backends.
const analystInstruction = `Ты — аналитик групповых чатов. Тебе передают переписку одного чата, ` +
	`по одному сообщению в строке. Составь краткий отчёт:

1. Основные темы обсуждения.
2. Просьбы и запросы участников.
3. Предложения и идеи.
4. Общее настроение переписки.

Отвечай всегда на русском языке.`

package prompts

const (
	// ArtStyleBlock は全プロンプト共通の画風指定です。
	// 公式アニメ調の手描き感とパステルカラーを固定するのだ。
	ArtStyleBlock = `**Art Style:**
- Official Chiikawa anime art style.
- Hand-drawn, slightly shaky lines.
- Soft pastel colors (pinks, whites, blues).
- Cute, minimalist backgrounds.`

	// StripStructureBlock は縦4コマ1枚絵のための構成ルールです。
	StripStructureBlock = `**Comic Structure & Rules:**
1.  **Layout:** The final output must be ONE SINGLE IMAGE, vertically divided into 4 equal square panels (top to bottom).
2.  **Story:** Create a funny, cute, or chaotic 4-panel story following the user's scenario. The story should have a clear beginning, middle, and a punchline/conclusion in the final panel.
3.  **Dialogue:** Include brief Chinese dialogue in speech bubbles where appropriate. Keep text short and legible.
4.  **Consistency:** Ensure the characters look consistent across all 4 panels.
5.  **Output:** Generate only the high-quality digital illustration of the comic strip.`

	// GridStructureBlock は旧 grid 形式（1コマ=1枚絵）用の構成ルールなのだ。
	// 新規生成パイプラインは strip のみを出力するが、プロンプト層としては
	// レイアウト指定に応じた指示文を出し分けられるようにしてあります。
	GridStructureBlock = `**Comic Structure & Rules:**
1.  **Layout:** Generate ONE square panel illustration. It is a single beat of a 4-panel story.
2.  **Dialogue:** Include brief Chinese dialogue in a speech bubble where appropriate. Keep text short and legible.
3.  **Consistency:** Keep the characters visually consistent with the other panels of the same story.
4.  **Output:** Generate only the high-quality digital illustration of the panel.`

	// ReferenceImageDirective は参照画像が添付されている場合にだけ差し込む指示文です。
	// 添付がない場合は代替文ごと省略し、null 参照のような文は決して出さないのだ。
	ReferenceImageDirective = "An image has been provided. Use it as a PRIMARY reference. The story should continue from the image, or incorporate the characters, objects, or style from the image into the Chiikawa world."

	// DirectRoleInstruction は直接生成方式の冒頭で AI に与える役割定義です。
	DirectRoleInstruction = `You are an expert manga artist specializing in the "Chiikawa" series.
Your task is to create a single vertical 4-panel comic strip (4-koma manga) based on the user's request.`

	// PlanningRoleInstruction は台本生成呼び出しの役割定義です。
	PlanningRoleInstruction = `You are an expert manga scriptwriter specializing in the "Chiikawa" series.
Plan a 4-panel comic strip (4-koma manga) from the user's scenario before any drawing happens.`

	// CompositionRoleInstruction は台本確定後の作画呼び出しの役割定義です。
	CompositionRoleInstruction = `You are an expert manga artist specializing in the "Chiikawa" series.
Draw the following fully planned 4-panel comic strip as one finished image.`

	// PlanningFormatBlock は台本のJSON出力形式を固定する指示文です。
	// visual_description は英語で画風に言及、dialogue は簡潔な中国語
	// （空文字は無言のコマ）という契約なのだ。
	PlanningFormatBlock = `**Output Format (STRICT):**
Respond with ONLY a JSON array of at most 4 panel objects, no prose, no markdown outside the JSON:
[
  {
    "panel": 1,
    "visual_description": "Detailed visual description in English. Mention the official Chiikawa anime art style.",
    "dialogue": "简短的中文对话。留空字符串表示这一格没有台词。"
  }
]
Rules: panel numbers start at 1 and increase, keep dialogue terse, an empty dialogue string means silence.`
)

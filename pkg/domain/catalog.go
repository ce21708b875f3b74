package domain

// Character はちいかわ世界に登場するキャラクターの識別子です。
// 値はプロセス起動時に固定された閉集合であり、実行中に増減しません。
type Character string

const (
	CharacterChiikawa  Character = "Chiikawa"
	CharacterHachiware Character = "Hachiware"
	CharacterUsagi     Character = "Usagi"
	CharacterMomonga   Character = "Momonga"
	CharacterKurimanju Character = "Kurimanju"
	CharacterRakko     Character = "Rakko"
)

// characterVisualCues は画像生成プロンプトに注入する外見上の特徴なのだ。
// 英語で記述するのは、画像モデルの理解精度が英語で最も安定するためです。
var characterVisualCues = map[Character]string{
	CharacterChiikawa:  "Chiikawa (small white round creature, cute bear-like, small eyebrows, pink cheeks)",
	CharacterHachiware: "Hachiware (white cat-like creature with blue ears and blue hachi-pattern hair on head)",
	CharacterUsagi:     "Usagi (yellow rabbit-like creature, long ears, donut tail)",
	CharacterMomonga:   "Momonga (flying squirrel, white face, big blue eyes, bushy tail)",
	CharacterKurimanju: "Kurimanju (brown otter-like face, serious expression)",
	CharacterRakko:     "Rakko (sea otter, white cape, hero scar on face)",
}

// characterLabels は UI 表示用のラベルです。
var characterLabels = map[Character]string{
	CharacterChiikawa:  "Chiikawa",
	CharacterHachiware: "Hachiware",
	CharacterUsagi:     "Usagi",
	CharacterMomonga:   "Momonga",
	CharacterKurimanju: "Kurimanju",
	CharacterRakko:     "Rakko",
}

// AllCharacters は定義済みキャラクターを宣言順で返すのだ。
func AllCharacters() []Character {
	return []Character{
		CharacterChiikawa,
		CharacterHachiware,
		CharacterUsagi,
		CharacterMomonga,
		CharacterKurimanju,
		CharacterRakko,
	}
}

// IsValid は閉集合に含まれる識別子かどうかを判定します。
func (c Character) IsValid() bool {
	_, ok := characterVisualCues[c]
	return ok
}

// VisualCue はプロンプト用の視覚的特徴フラグメントを返します。
// 未定義の識別子の場合は識別子そのものを返し、生成を止めないのだ。
func (c Character) VisualCue() string {
	if cue, ok := characterVisualCues[c]; ok {
		return cue
	}
	return string(c)
}

// Label は表示用ラベルを返します。
func (c Character) Label() string {
	if label, ok := characterLabels[c]; ok {
		return label
	}
	return string(c)
}

// Style は生成する漫画全体のムード（表情・テンション）の識別子です。
type Style string

const (
	StyleStandard Style = "Standard"
	StyleEating   Style = "Eating"
	StyleCrying   Style = "Crying"
	StyleSleepy   Style = "Sleepy"
	StyleChaotic  Style = "Chaotic"
)

// styleDirectives はプロンプトに差し込むムード指示文です。
var styleDirectives = map[Style]string{
	StyleStandard: "Keep the overall mood cheerful and everyday, typical slice-of-life Chiikawa energy.",
	StyleEating:   "Focus on delicious food and blissful eating expressions, cheeks stuffed and sparkling eyes.",
	StyleCrying:   "Lean into teary, trembling, overwhelmed expressions, the characters cry in an adorable way.",
	StyleSleepy:   "Give the scene a drowsy, cozy atmosphere with droopy eyes, yawns and soft blankets.",
	StyleChaotic:  "Make the situation escalate into absurd chaos, exaggerated panic faces and speed lines.",
}

var styleLabels = map[Style]string{
	StyleStandard: "Normal",
	StyleEating:   "Yummy",
	StyleCrying:   "Scared",
	StyleSleepy:   "Sleepy",
	StyleChaotic:  "Chaos",
}

// AllStyles は定義済みスタイルを宣言順で返すのだ。
func AllStyles() []Style {
	return []Style{StyleStandard, StyleEating, StyleCrying, StyleSleepy, StyleChaotic}
}

// IsValid は閉集合に含まれるスタイルかどうかを判定します。
func (s Style) IsValid() bool {
	_, ok := styleDirectives[s]
	return ok
}

// Directive はプロンプト用のムード指示文を返します。未定義なら空文字です。
func (s Style) Directive() string {
	return styleDirectives[s]
}

// Label は表示用ラベルを返します。
func (s Style) Label() string {
	if label, ok := styleLabels[s]; ok {
		return label
	}
	return string(s)
}

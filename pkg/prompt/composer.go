package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

// ErrUnmappedValue はカタログに存在しないキーが指定された場合のエラーです。
var ErrUnmappedValue = errors.New("value is not in catalog")

// Composer は設定値からモデルへの指示文を組み立てます。
type Composer struct {
	catalog     *Catalog
	passthrough bool
}

// Option は Composer の挙動を変更します。
type Option func(*Composer)

// WithPassthrough はカタログにないキーをエラーにせず、そのまま指示文に埋め込みます。
func WithPassthrough() Option {
	return func(c *Composer) { c.passthrough = true }
}

// NewComposer は Composer を作成します。catalog が nil の場合は DefaultCatalog を使います。
func NewComposer(catalog *Catalog, opts ...Option) *Composer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	c := &Composer{catalog: catalog}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog は Composer が参照しているカタログを返します。
func (c *Composer) Catalog() *Catalog {
	return c.catalog
}

func (c *Composer) resolve(field, key string, lookup func() (string, bool)) (string, error) {
	if d, ok := lookup(); ok {
		return d, nil
	}
	if c.passthrough {
		return key, nil
	}
	return "", fmt.Errorf("%s %q: %w", field, key, ErrUnmappedValue)
}

// Hairstyle はヘアスタイル変換用の指示文を返します。
// 指示の順序は 顔の固定 → 被り物の固定 → 背景の固定 → スタイル/カラー/ボリューム → ユーザー指示 です。
// ユーザーの自由入力は最後に置かれ、定型の指示より優先されます。
func (c *Composer) Hairstyle(cfg domain.HairstyleConfig) (string, error) {
	cfg = cfg.WithDefaults()

	gender, err := c.resolve("gender", string(cfg.Gender), func() (string, bool) { return c.catalog.Gender(cfg.Gender) })
	if err != nil {
		return "", err
	}
	style, err := c.resolve("style", string(cfg.Style), func() (string, bool) { return c.catalog.Style(cfg.Style) })
	if err != nil {
		return "", err
	}
	color, err := c.resolve("color", string(cfg.Color), func() (string, bool) { return c.catalog.Color(cfg.Color) })
	if err != nil {
		return "", err
	}
	volume, ok := c.catalog.Volume(cfg.Volume)
	if !ok {
		if !c.passthrough {
			return "", fmt.Errorf("volume %q: %w", cfg.Volume, ErrUnmappedValue)
		}
		volume, _ = c.catalog.Volume(domain.VolumeMedium)
	}

	var b strings.Builder
	b.WriteString("ROLE: Senior VFX Grooming Artist & Compositor.\n")
	fmt.Fprintf(&b, "TASK: Photorealistic Digital Hair Replacement on a %s plate.\n", cfg.Resolution)
	fmt.Fprintf(&b, "SUBJECT: %s. Match the input photo exposure, light direction, hardness, color temperature and sensor noise exactly.\n\n", gender)

	b.WriteString("1. IDENTITY LOCK (CRITICAL): The face landmarks (eyes, nose, mouth, chin, jawline, skin texture) are FROZEN. ")
	b.WriteString("Do not perform face swapping. Preserve high-frequency skin texture where hair meets the face.\n")
	b.WriteString("2. HEADWEAR & EYEWEAR LOCK (CRITICAL): If the input contains a hat, beanie, cap, helmet, hijab or glasses, keep it as a solid, immutable object. ")
	b.WriteString("The new hair must flow naturally from under or around it. Never remove headwear unless the user explicitly asks.\n")
	b.WriteString("3. BACKGROUND LOCK: Background pixels (walls, text, patterns) are LOCKED and must not change.\n")
	fmt.Fprintf(&b, "4. STYLE: Apply \"%s\" hair.\n", style)
	fmt.Fprintf(&b, "5. COLOR: \"%s\".\n", color)
	fmt.Fprintf(&b, "6. VOLUME: %s. Hair has mass, sits on the head and casts shadows on the forehead and ears.\n", volume)
	b.WriteString("7. HAIRLINE: Generate irregular, organic transitions with fine vellus hairs. Never draw a hard straight hairline. Edge strands are translucent.\n")

	if p := strings.TrimSpace(cfg.Prompt); p != "" {
		fmt.Fprintf(&b, "\nUSER OVERRIDES (HIGHEST PRIORITY, overrides any instruction above): %s\n", p)
	}

	b.WriteString("\nOUTPUT: A composite indistinguishable from a real photograph. No AI gloss.")
	return b.String(), nil
}

// Enhance は画質改善（レストア）用の指示文を返します。
func (c *Composer) Enhance() string {
	return strings.Join([]string{
		"Analyze the input image and first write a short, neutral description based only on visual facts.",
		"Using that description, perform a high-fidelity restoration of the image.",
		"- Remove pixelation, noise and compression blocks.",
		"- Increase sharpness and naturalness.",
		"- IDENTITY LOCK (CRITICAL): keep skin texture, the shape of eyes, lips and nose unchanged. Do not alter the face.",
		"- HEADWEAR LOCK (CRITICAL): keep any hats, caps, scarves, glasses and accessories exactly as they are.",
		"- Do not change lighting, color temperature or camera angle.",
		"- Only restore what can be logically recovered from the original pixels.",
		"The result must look like the same photo, technically improved: sharp, clean and free of distortion.",
	}, "\n")
}

// Character はキャラクター作成用の指示文を返します。
func (c *Composer) Character(description, style string) string {
	var b strings.Builder
	b.WriteString("Character Generation Task.\n")
	fmt.Fprintf(&b, "Character Description: %s.\n", strings.TrimSpace(description))
	fmt.Fprintf(&b, "Artistic Style: %s.\n", strings.TrimSpace(style))
	b.WriteString("Output a high-quality image of the character on a neutral or simple background to establish identity.")
	return b.String()
}

// Scene は参照画像のキャラクターを新しいシーンに配置する指示文を返します。
func (c *Composer) Scene(characterDescription, scenePrompt, style string) string {
	var b strings.Builder
	b.WriteString("Scene Generation with Consistent Character.\n")
	fmt.Fprintf(&b, "Character Description: %s.\n", strings.TrimSpace(characterDescription))
	fmt.Fprintf(&b, "Target Scene: %s.\n", strings.TrimSpace(scenePrompt))
	fmt.Fprintf(&b, "Artistic Style: %s.\n\n", strings.TrimSpace(style))
	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("1. Use the provided image as the REFERENCE for the character's appearance.\n")
	b.WriteString("2. Place this exact character into the scene described.\n")
	b.WriteString("3. Ensure the character looks consistent with the reference image.\n")
	b.WriteString("4. Apply the requested artistic style.")
	return b.String()
}

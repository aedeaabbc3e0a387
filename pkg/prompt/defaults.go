package prompt

import "github.com/shouni/astoria-image-kit/pkg/domain"

const (
	StyleLongWavy        domain.StyleID = "long-wavy"
	StyleBob             domain.StyleID = "bob"
	StylePixie           domain.StyleID = "pixie"
	StyleBuzzCut         domain.StyleID = "buzz-cut"
	StyleStraightBangs   domain.StyleID = "straight-bangs"
	StyleCurlyAfro       domain.StyleID = "curly-afro"
	StyleMessyBun        domain.StyleID = "messy-bun"
	StyleUndercut        domain.StyleID = "undercut"
	StyleBraids          domain.StyleID = "braids"
	StyleAfro            domain.StyleID = "afro"
	StyleMullet          domain.StyleID = "mullet"
	StyleShag            domain.StyleID = "shag"
	StyleWolfCut         domain.StyleID = "wolf-cut"
	StyleCurtainBangs    domain.StyleID = "curtain-bangs"
	StyleCaesar          domain.StyleID = "caesar"
	StyleDreadlocks      domain.StyleID = "dreadlocks"
	StyleSlickedBack     domain.StyleID = "slicked-back"
	StyleMohawk          domain.StyleID = "mohawk"
	StyleBald            domain.StyleID = "bald"
	StyleHighPonytail    domain.StyleID = "high-ponytail"
	StylePerm            domain.StyleID = "perm"
	StyleSidePart        domain.StyleID = "side-part"
	StyleCascade         domain.StyleID = "cascade"
	StyleLob             domain.StyleID = "lob"
	StyleBeachWaves      domain.StyleID = "beach-waves"
	StyleBoxBraids       domain.StyleID = "box-braids"
	StylePompadour       domain.StyleID = "pompadour"
	StyleFade            domain.StyleID = "fade"
	StyleGarcon          domain.StyleID = "garcon"
	StyleSpaceBuns       domain.StyleID = "space-buns"
	StyleHollywoodWaves  domain.StyleID = "hollywood-waves"
	StylePatternUndercut domain.StyleID = "pattern-undercut"
	StyleBowlCut         domain.StyleID = "bowl-cut"
	StyleManBun          domain.StyleID = "man-bun"
	StyleFishtailBraid   domain.StyleID = "fishtail-braid"
	StyleSleekBun        domain.StyleID = "sleek-bun"
	StyleShortDreadlocks domain.StyleID = "short-dreadlocks"
	StyleCornrows        domain.StyleID = "cornrows"
	StyleAsymmetricalBob domain.StyleID = "asymmetrical-bob"
	StyleCurlyBob        domain.StyleID = "curly-bob"
	StyleFrenchBraid     domain.StyleID = "french-braid"
)

const (
	ColorBlonde   domain.ColorID = "blonde"
	ColorBrown    domain.ColorID = "brown"
	ColorBlack    domain.ColorID = "black"
	ColorAuburn   domain.ColorID = "auburn"
	ColorAsh      domain.ColorID = "ash"
	ColorPink     domain.ColorID = "pink"
	ColorBlue     domain.ColorID = "blue"
	ColorGreen    domain.ColorID = "green"
	ColorPlatinum domain.ColorID = "platinum"
)

func e[T ~string](id T, label, descriptor string) Entry {
	return Entry{ID: string(id), Label: label, Descriptor: descriptor}
}

var defaultTables = CatalogTables{
	Styles: []Entry{
		e(StyleLongWavy, "Long Wavy", "Long Wavy Hair, soft natural flow, touching shoulders"),
		e(StyleBob, "Bob", "Classic Chin-Length Bob, sleek and professional"),
		e(StylePixie, "Pixie", "Short Pixie Cut, textured, neat edges"),
		e(StyleBuzzCut, "Buzz Cut", "Buzz Cut, military style, very short stubble"),
		e(StyleStraightBangs, "Straight with Bangs", "Long Straight Hair with soft bangs"),
		e(StyleCurlyAfro, "Curly Afro", "Textured 4C Afro with defined coils, neat and controlled volume"),
		e(StyleMessyBun, "Messy Bun", "Low messy bun, casual look"),
		e(StyleUndercut, "Undercut", "Undercut with short textured top, clean sides"),
		e(StyleBraids, "Braids", "Simple Braided Hairstyle, neat"),
		e(StyleAfro, "Afro", "Round Afro, medium volume, natural texture"),
		e(StyleMullet, "Mullet", "Modern Mullet, short sides, longer back"),
		e(StyleShag, "Shag", "Shag Cut, medium length, layered"),
		e(StyleWolfCut, "Wolf Cut", "Trendy Wolf Cut, shaggy heavily layered mullet hybrid, messy texture"),
		e(StyleCurtainBangs, "Curtain Bangs", "Medium length hair with prominent Curtain Bangs framing the face"),
		e(StyleCaesar, "Caesar Crop", "French Crop / Caesar Cut, short textured top with straight fringe and faded sides"),
		e(StyleDreadlocks, "Dreadlocks", "Medium length Dreadlocks, well-maintained and detailed texture"),
		e(StyleSlickedBack, "Slicked Back", "Slicked Back Hair, mafia style, wet look, clean forehead"),
		e(StyleMohawk, "Mohawk", "Punk Mohawk with faded/shaved sides, edgy look"),
		e(StyleBald, "Bald", "Completely Bald Head, smooth skin texture, realistic lighting on scalp"),
		e(StyleHighPonytail, "High Ponytail", "High Ponytail, sleek pulled back hair, sharp look"),
		e(StylePerm, "Perm", "Perm / Curly Perm, tight ringlets, high volume"),
		e(StyleSidePart, "Side Part", "Classic Side Part, gentleman/professional cut, neat"),
		e(StyleCascade, "Cascade", "Long Layered Haircut (Cascade), face-framing layers, voluminous and dynamic"),
		e(StyleLob, "Lob", "Long Bob (Lob), shoulder-grazing length, blunt cut, modern and sleek"),
		e(StyleBeachWaves, "Beach Waves", "Messy Beach Waves, textured salt-spray look, medium length, effortless vibe"),
		e(StyleBoxBraids, "Box Braids", "Long Box Braids, protective style, neat parting, detailed braiding texture"),
		e(StylePompadour, "Pompadour", "Classic Pompadour, high volume swept-back top, short tapered sides, rockabilly style"),
		e(StyleFade, "Fade", "Skin Fade Haircut, gradient from bald to short hair on top, sharp clean hairline"),
		e(StyleGarcon, "Garçon", "Short French Garçon cut, boyish but feminine, textured top, short nape"),
		e(StyleSpaceBuns, "Space Buns", "Double Space Buns (high buns), playful style, messy texture"),
		e(StyleHollywoodWaves, "Hollywood Waves", "Glamorous Old Hollywood Waves, glossy, deep side part, vintage elegance"),
		e(StylePatternUndercut, "Pattern Undercut", "Undercut with shaved geometric hair tattoo design on sides"),
		e(StyleBowlCut, "Bowl Cut", "Modern Bowl Cut, high fashion, heavy straight fringe, undercut sides"),
		e(StyleManBun, "Man Bun", "Man Bun / Top Knot with shaved sides, hipster style"),
		e(StyleFishtailBraid, "Fishtail Braid", "Bohemian Fishtail Braid, intricate weaving, slightly messy texture"),
		e(StyleSleekBun, "Sleek Bun", "Tight Sleek Low Bun, middle part, 'clean girl' aesthetic, glossy finish"),
		e(StyleShortDreadlocks, "Short Dreadlocks", "Short Dreadlocks, styled upwards or messy, urban look"),
		e(StyleCornrows, "Cornrows", "Tight Cornrow Braids close to the scalp, intricate patterns"),
		e(StyleAsymmetricalBob, "Asymmetrical Bob", "Asymmetrical Bob Haircut, one side significantly longer than the other, modern and edgy"),
		e(StyleCurlyBob, "Curly Bob", "Curly Bob, chin length, tight defined ringlets, high volume"),
		e(StyleFrenchBraid, "French Braid", "French Braid, single neat braid running down the back, classic style"),
	},
	Colors: []Entry{
		e(ColorBlonde, "Blonde", "Natural Dirty Blonde with subtle lowlights"),
		e(ColorBrown, "Brown", "Dark Chocolate Brown"),
		e(ColorBlack, "Black", "Natural Soft Black (not jet black)"),
		e(ColorAuburn, "Auburn", "Dark Auburn / Natural Copper (realistic red hair)"),
		e(ColorAsh, "Ash", "Ash Grey / Silver with natural aging look"),
		e(ColorPink, "Pink", "Muted Pastel Pink (hair dye style), not neon"),
		e(ColorBlue, "Blue", "Dark Midnight Blue (hair dye style)"),
		e(ColorGreen, "Green", "Dark Forest Green (hair dye style)"),
		e(ColorPlatinum, "Platinum", "Platinum Blonde with realistic sheen"),
	},
	Genders: []Entry{
		e(domain.GenderFemale, "Female", "Female"),
		e(domain.GenderMale, "Male", "Male"),
		e(domain.GenderUnspecified, "Unspecified", "Person"),
	},
	Volumes: []Entry{
		e(domain.VolumeNatural, "Natural", "Natural/Low hair volume, lying flat against head, realistic gravity, no added root lift"),
		e(domain.VolumeMedium, "Medium", "Medium hair volume, healthy density, standard daily look, slight bounce"),
		e(domain.VolumeHigh, "High", "High volume, voluminous, airy, lifted roots, thick glam appearance, fluffy"),
	},
}

// DefaultCatalog は標準のスタイル・カラー表を持つ Catalog を返します。
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultTables)
}

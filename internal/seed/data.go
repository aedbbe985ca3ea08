package seed

import "github.com/tuaha311/aesthetics-clinic/internal/model"

type faq struct {
	question string
	answer   string
}

type treatment struct {
	name         string
	category     model.Category
	description  string
	whatToExpect string
	priceRange   string
	duration     string
	featured     bool
	faqs         []faq
}

type teamMember struct {
	name string
	role string
	bio  string
}

type testimonial struct {
	name      string
	quote     string
	treatment string
	featured  bool
}

type post struct {
	title   string
	excerpt string
	content string
}

var treatments = []treatment{
	{
		name:         "Microneedling",
		category:     model.CategoryFace,
		description:  "Microneedling is a minimally invasive cosmetic procedure that uses fine needles to create tiny punctures in the skin. The skin's healing response produces new collagen and elastin, improving texture, softening scars and rejuvenating the complexion.",
		whatToExpect: "A topical anesthetic is applied first to minimize discomfort. The procedure takes approximately 30-45 minutes. Mild redness and sensitivity are normal for 1-3 days. For best results we recommend a series of 3-6 treatments spaced 4-6 weeks apart.",
		priceRange:   "$250 - $350",
		duration:     "45 minutes",
		featured:     true,
		faqs: []faq{
			{"Is microneedling painful?", "We apply a topical numbing cream before the procedure, so most patients feel only a slight prickling sensation."},
			{"How many sessions will I need?", "Most clients see the best results from 3-6 treatments spaced 4-6 weeks apart, depending on their skin concerns."},
			{"What is the recovery time?", "Expect mild redness and sensitivity for 1-3 days. Most patients resume normal activities the next day."},
		},
	},
	{
		name:         "Chemical Peel",
		category:     model.CategoryFace,
		description:  "Chemical peels use a solution to remove the top layers of skin, revealing smoother and more evenly toned skin underneath. They address fine lines, sun damage, acne scars and hyperpigmentation.",
		whatToExpect: "The solution is applied to cleansed skin and neutralized after a set time. A tingling or warm sensation is common. Depending on the depth of the peel, recovery ranges from 1 to 14 days of redness, peeling and sensitivity.",
		priceRange:   "$150 - $400",
		duration:     "30 minutes",
		faqs: []faq{
			{"What types of chemical peels do you offer?", "We offer superficial, medium and deep peels. Your practitioner recommends one based on your skin and goals."},
			{"How often can I get a chemical peel?", "Superficial peels every 2-4 weeks, medium peels every 3-6 months. Deep peels are usually done once."},
			{"Will my skin actually peel?", "Most patients see some peeling. How much depends on the strength of the peel."},
		},
	},
	{
		name:         "HydraFacial",
		category:     model.CategoryFace,
		description:  "HydraFacial is a multi-step treatment that cleanses, exfoliates and extracts impurities while hydrating the skin with antioxidants, peptides and hyaluronic acid. It suits all skin types and has no downtime.",
		whatToExpect: "The treatment takes about 30 minutes: cleansing and exfoliation, a gentle acid peel, painless extractions and a hydrating serum. Results in hydration, tone and texture are visible immediately.",
		priceRange:   "$180 - $300",
		duration:     "30 minutes",
		featured:     true,
		faqs: []faq{
			{"How long do the results last?", "Most clients notice refined, radiant skin after one treatment, with hydration lasting 5-7 days or longer."},
			{"How often should I get a HydraFacial?", "For ongoing results we recommend one treatment every 4 weeks."},
			{"Is there any downtime after a HydraFacial?", "None. You can return to normal activities immediately."},
		},
	},
	{
		name:         "Body Contouring",
		category:     model.CategoryBody,
		description:  "Non-surgical body contouring targets stubborn fat pockets, tightens skin and shapes the body. It is ideal for people with a healthy lifestyle who have areas that resist diet and exercise.",
		whatToExpect: "You relax while the specialist applies the device to the treatment area. Most people feel warmth or gentle suction. Sessions last 30-60 minutes and a series of treatments gives the best results.",
		priceRange:   "$300 - $500 per session",
		duration:     "60 minutes",
		featured:     true,
		faqs: []faq{
			{"Is body contouring painful?", "Most clients report minimal discomfort, usually warmth, gentle suction or mild tingling."},
			{"How many sessions will I need?", "Most clients need 4-8 sessions spaced 1-2 weeks apart."},
			{"Is there any downtime?", "Little to none. Mild redness in the treated area usually fades within hours."},
		},
	},
	{
		name:         "Laser Hair Removal",
		category:     model.CategoryBody,
		description:  "Laser hair removal targets hair follicles with advanced laser technology for permanent hair reduction. It works on most skin types and almost any area of the body.",
		whatToExpect: "Each pulse feels like a rubber band snap. Sessions run from 15 minutes for small areas to over an hour for large ones. We recommend 6-8 treatments spaced 4-6 weeks apart.",
		priceRange:   "$150 - $600 per session",
		duration:     "15-60 minutes",
		faqs: []faq{
			{"Does laser hair removal hurt?", "Most clients compare it to a rubber band snap. Cooling technology keeps you comfortable."},
			{"How many sessions will I need?", "Usually 6-8 treatments spaced 4-6 weeks apart, with occasional maintenance sessions."},
			{"Which areas can be treated?", "Virtually any area, including face, underarms, legs, bikini line, back and chest."},
		},
	},
	{
		name:         "Anti-Wrinkle Injections",
		category:     model.CategoryInjectables,
		description:  "Anti-wrinkle injections temporarily relax the facial muscles that cause expression lines, smoothing forehead lines, crow's feet and frown lines.",
		whatToExpect: "After a consultation your provider gives a series of small injections into the targeted muscles. It takes 15-20 minutes. Results appear within 3-7 days and last 3-4 months.",
		priceRange:   "$250 - $600",
		duration:     "20 minutes",
		featured:     true,
		faqs: []faq{
			{"When will I see results?", "Results begin within 3-7 days, with the full effect visible after 2 weeks."},
			{"How long do results last?", "Typically 3-4 months. Regular treatments maintain the result."},
			{"Are there any side effects?", "Temporary bruising, redness or swelling at the injection sites, which resolves within days."},
		},
	},
	{
		name:         "Dermal Fillers",
		category:     model.CategoryInjectables,
		description:  "Dermal fillers restore volume, smooth lines and enhance facial contours, treating nasolabial folds, marionette lines, lips, cheeks and the jawline.",
		whatToExpect: "The filler is placed with a fine needle or cannula after numbing cream is applied. The procedure takes 30-45 minutes. Results are immediate and last 6-24 months depending on the product and area.",
		priceRange:   "$500 - $1200",
		duration:     "45 minutes",
		faqs: []faq{
			{"What types of fillers do you use?", "Premium hyaluronic acid fillers from trusted brands, chosen for your treatment area."},
			{"Do filler injections hurt?", "Numbing cream and fillers containing lidocaine keep discomfort to a minimum."},
			{"How long do fillers last?", "Between 6 and 24 months depending on the filler, the area and the individual."},
		},
	},
}

var team = []teamMember{
	{
		name: "Dr. Sophia Williams",
		role: "Lead Aesthetician & Medical Director",
		bio:  "Dr. Williams has over 15 years of experience in aesthetic medicine. Board-certified in dermatology, she specializes in advanced injectable treatments and favours natural-looking results.",
	},
	{
		name: "Emma Johnson",
		role: "Senior Aesthetician",
		bio:  "Emma has 10 years in the industry and specializes in advanced facial treatments and chemical peels, building personalized treatment plans around each client's skin.",
	},
	{
		name: "Michael Chen",
		role: "Body Contouring Specialist",
		bio:  "Michael brings 8 years of experience in non-surgical body contouring and has trained on the latest technologies to deliver precise, consistent results.",
	},
	{
		name: "Jessica Martinez",
		role: "Laser Technician & Skincare Specialist",
		bio:  "Jessica specializes in laser hair removal, skin rejuvenation and pigmentation. Certified on several laser platforms, she has 6 years of experience treating all skin types.",
	},
}

var testimonials = []testimonial{
	{
		name:      "Sarah T.",
		quote:     "I've tried many facial treatments over the years, but the HydraFacial here is exceptional. My skin looked radiant right after the first session and the staff made me feel completely comfortable.",
		treatment: "HydraFacial",
		featured:  true,
	},
	{
		name:      "James K.",
		quote:     "Dr. Williams explained everything clearly and my anti-wrinkle results look so natural. People just think I look well-rested!",
		treatment: "Anti-Wrinkle Injections",
		featured:  true,
	},
	{
		name:      "Michelle D.",
		quote:     "Body contouring made a real difference after having children. The team supported me throughout and I finally feel confident in my clothes again.",
		treatment: "Body Contouring",
		featured:  true,
	},
	{
		name:      "David L.",
		quote:     "I was nervous about microneedling but the team put me at ease. The improvement in my acne scars after three sessions is remarkable.",
		treatment: "Microneedling",
	},
	{
		name:      "Amara J.",
		quote:     "Laser hair removal has been life-changing. No more ingrown hairs, and the treatments were far more comfortable than I expected.",
		treatment: "Laser Hair Removal",
	},
	{
		name:      "Robert P.",
		quote:     "Fillers restored volume to my cheeks and softened my smile lines. The result looks completely natural, which mattered most to me.",
		treatment: "Dermal Fillers",
		featured:  true,
	},
}

var posts = []post{
	{
		title:   "Understanding the Different Types of Chemical Peels",
		excerpt: "Learn about different types of chemical peels, from superficial to deep, and how to choose the right one for your skin concerns.",
		content: `Chemical peels address fine lines, sun damage, uneven tone and acne scars. With so many options, which one is right for you?

**Superficial Peels**

Also called lunchtime peels, these use mild alpha-hydroxy acids to exfoliate the outermost layer of skin with minimal downtime.

**Medium Peels**

Medium peels reach the middle layers of the skin, usually with TCA or glycolic acid. They treat wrinkles, acne scars and uneven tone, with 5-7 days of recovery.

**Deep Peels**

Deep peels use phenol to reach the lower dermis. They can dramatically improve deep wrinkles and scars, with 2-3 weeks of recovery and long-lasting results.

**Which Peel is Right for You?**

It depends on your skin type, your concerns and how much downtime you can accommodate. Our skincare experts will recommend the right treatment at your consultation.

Always protect your skin from the sun after a peel.`,
	},
	{
		title:   "The Science Behind Collagen Stimulating Treatments",
		excerpt: "Discover how treatments like microneedling, radiofrequency, and lasers stimulate collagen production to combat aging and improve skin quality.",
		content: `Collagen keeps skin firm and elastic, and our natural production declines with age. Several treatments can stimulate it again.

**Microneedling**

Thousands of microscopic channels trigger the skin's healing response, producing new collagen and elastin.

**Radiofrequency Treatments**

Radiofrequency heats the deeper layers of the skin, contracting existing collagen and activating the fibroblasts that make more.

**Laser Treatments**

Fractional lasers create controlled micro-injuries that drive collagen remodeling.

**Platelet-Rich Plasma (PRP)**

Growth factors from your own blood activate fibroblasts and accelerate tissue regeneration.

**The Timeline for Results**

New collagen typically forms 4-8 weeks after treatment and keeps improving for 3-6 months, so a series of sessions works best.`,
	},
	{
		title:   "Choosing Between Anti-Wrinkle Injections and Dermal Fillers",
		excerpt: "Understand the differences between anti-wrinkle injections and dermal fillers to determine which injectable treatment is right for your aesthetic goals.",
		content: `Anti-wrinkle injections and dermal fillers both reduce signs of aging, but they work very differently.

**How Anti-Wrinkle Injections Work**

They relax the muscles that cause dynamic wrinkles, the lines that appear when you smile, frown or squint.

**How Dermal Fillers Work**

Hyaluronic acid fillers restore lost volume and fill static wrinkles that show when your face is at rest.

**Which Concerns Do They Address?**

Anti-wrinkle injections suit:

- Forehead lines
- Frown lines between the brows
- Crow's feet

Dermal fillers suit:

- Nasolabial folds
- Marionette lines
- Lip enhancement
- Cheek and jawline definition

**Combining Treatments**

Many clients combine both, with injections on the upper face and fillers restoring volume lower down.

**Longevity of Results**

Injections typically last 3-4 months and fillers 6-24 months.`,
	},
}

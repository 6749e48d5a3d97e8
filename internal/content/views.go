package content

// Typed views of the sections the public pages render. They tolerate the
// legacy shapes found in stored content.

type Hero struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Image    ImageRef `json:"image"`
}

type Banner struct {
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Description string       `json:"description"`
	ButtonText  string       `json:"buttonText"`
	ButtonLink  string       `json:"buttonLink"`
	Images      BannerImages `json:"images"`
}

type BannerImages struct {
	MainImage   ImageRef   `json:"mainImage"`
	SmallImages []ImageRef `json:"smallImages"`
}

type TextBlock struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Image       ImageRef `json:"image"`
	ButtonText  string   `json:"buttonText"`
	ButtonLink  string   `json:"buttonLink"`
	Features    []Card   `json:"features"`
}

// Card is the generic list item: services, features, steps, stats.
type Card struct {
	ID          ItemID   `json:"id"`
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	Description string   `json:"description"`
	Label       string   `json:"label"`
	Value       Text     `json:"value"`
	Price       Text     `json:"price"`
	Icon        string   `json:"icon"`
	Image       ImageRef `json:"image"`
	Features    []Text   `json:"features"`
}

// List is a titled section holding one repeatable list under items.
type List[T any] struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Items    []T    `json:"items"`
}

type FAQItem struct {
	ID       ItemID `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Logo struct {
	ID    ItemID   `json:"id"`
	Name  string   `json:"name"`
	Image ImageRef `json:"image"`
}

type Sponsors struct {
	Title string `json:"title"`
	Logos []Logo `json:"logos"`
}

type Testimonial struct {
	ID     ItemID   `json:"id"`
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Quote  string   `json:"quote"`
	Rating Text     `json:"rating"`
	Image  ImageRef `json:"image"`
}

type PlanList struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Plans    []Plan `json:"plans"`
}

type Steps struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Steps    []Card `json:"steps"`
}

type Category struct {
	ID     ItemID `json:"id"`
	Name   string `json:"name"`
	Filter string `json:"filter"`
}

type PortfolioItem struct {
	ID       ItemID   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Image    ImageRef `json:"image"`
}

type Comparison struct {
	ID          ItemID   `json:"id"`
	Title       string   `json:"title"`
	BeforeImage ImageRef `json:"beforeImage"`
	AfterImage  ImageRef `json:"afterImage"`
}

type TeamMember struct {
	ID     ItemID            `json:"id"`
	Name   string            `json:"name"`
	Role   string            `json:"role"`
	Bio    string            `json:"bio"`
	Image  ImageRef          `json:"image"`
	Social map[string]string `json:"social"`
}

type Team struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Members  []TeamMember `json:"members"`
}

type Article struct {
	ID       ItemID   `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Image    ImageRef `json:"image"`
	Tags     []string `json:"tags"`
}

type ContactDetails struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Website string `json:"website"`
}

type OpeningHours struct {
	ID    ItemID `json:"id"`
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

type SocialLink struct {
	ID       ItemID `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type BlogSettings struct {
	PostsPerPage int      `json:"postsPerPage"`
	ShowAuthor   bool     `json:"showAuthor"`
	ShowDate     bool     `json:"showDate"`
	Categories   []string `json:"categories"`
}

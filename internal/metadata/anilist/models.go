package anilist

// Title holds the variants of an anime title.
type Title struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

// Preferred returns the best available display title.
func (t Title) Preferred() string {
	if t.English != "" {
		return t.English
	}
	if t.Romaji != "" {
		return t.Romaji
	}
	return t.Native
}

// CoverImage holds cover art URLs at several sizes.
type CoverImage struct {
	ExtraLarge string `json:"extraLarge"`
	Large      string `json:"large"`
	Medium     string `json:"medium"`
}

// AnimeSummary is the list-view projection used by search, trending and
// popular results.
type AnimeSummary struct {
	ID           int        `json:"id"`
	Title        Title      `json:"title"`
	CoverImage   CoverImage `json:"coverImage"`
	AverageScore int        `json:"averageScore"`
	Episodes     int        `json:"episodes"`
	Status       string     `json:"status"`
	SeasonYear   int        `json:"seasonYear"`
}

// FuzzyDate is a partial calendar date as returned by the catalog.
type FuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// StudioNode is one producing studio.
type StudioNode struct {
	Name    string `json:"name"`
	SiteURL string `json:"siteUrl"`
}

// CharacterNode is one character entry.
type CharacterNode struct {
	Name struct {
		Full string `json:"full"`
	} `json:"name"`
	Image struct {
		Large string `json:"large"`
	} `json:"image"`
}

// AnimeDetail is the full detail record for a single anime.
type AnimeDetail struct {
	ID              int        `json:"id"`
	IDMal           int        `json:"idMal"`
	Title           Title      `json:"title"`
	Description     string     `json:"description"`
	Episodes        int        `json:"episodes"`
	Duration        int        `json:"duration"`
	Status          string     `json:"status"`
	Season          string     `json:"season"`
	SeasonYear      int        `json:"seasonYear"`
	Genres          []string   `json:"genres"`
	AverageScore    int        `json:"averageScore"`
	MeanScore       int        `json:"meanScore"`
	Popularity      int        `json:"popularity"`
	Trending        int        `json:"trending"`
	CoverImage      CoverImage `json:"coverImage"`
	BannerImage     string     `json:"bannerImage"`
	Format          string     `json:"format"`
	Source          string     `json:"source"`
	Hashtag         string     `json:"hashtag"`
	CountryOfOrigin string     `json:"countryOfOrigin"`
	IsLicensed      bool       `json:"isLicensed"`
	IsAdult         bool       `json:"isAdult"`
	SiteURL         string     `json:"siteUrl"`
	StartDate       FuzzyDate  `json:"startDate"`
	EndDate         FuzzyDate  `json:"endDate"`
	Studios         struct {
		Nodes []StudioNode `json:"nodes"`
	} `json:"studios"`
	Characters struct {
		Nodes []CharacterNode `json:"nodes"`
	} `json:"characters"`
}

package domain

// View is one of the pages the SPA client can render. The set is closed:
// navigation may carry arbitrary strings, but ParseView folds anything
// unknown to the default before the access gate ever sees it.
type View string

const (
	ViewHome              View = "home"
	ViewFeatures          View = "features"
	ViewAuth              View = "auth"
	ViewAbout             View = "about"
	ViewDashboard         View = "dashboard"
	ViewCommunityAid      View = "community-aid"
	ViewReliefMap         View = "relief-map"
	ViewAiBuddy           View = "ai-buddy"
	ViewNGODashboard      View = "ngo-dashboard"
	ViewSentimentAnalysis View = "sentiment-analysis"
	ViewStoryWall         View = "story-wall"
	ViewWellnessPrograms  View = "wellness-programs"

	// ViewLoading is the placeholder rendered while session resolution is
	// still in flight. It is never a navigation target.
	ViewLoading View = "loading"
)

// DefaultView is rendered for unknown view names.
const DefaultView = ViewHome

// AllViews lists every navigable view, loading excluded.
func AllViews() []View {
	return []View{
		ViewHome,
		ViewFeatures,
		ViewAuth,
		ViewAbout,
		ViewDashboard,
		ViewCommunityAid,
		ViewReliefMap,
		ViewAiBuddy,
		ViewNGODashboard,
		ViewSentimentAnalysis,
		ViewStoryWall,
		ViewWellnessPrograms,
	}
}

// ParseView maps a requested view name to a member of the closed set,
// falling back to DefaultView for anything it does not recognize.
func ParseView(s string) View {
	for _, v := range AllViews() {
		if View(s) == v {
			return v
		}
	}
	return DefaultView
}

// RequiresAuth reports whether a view is in the protected subset: rendering
// it requires a genuine authenticated (non-guest) session.
func (v View) RequiresAuth() bool {
	switch v {
	case ViewDashboard,
		ViewCommunityAid,
		ViewReliefMap,
		ViewAiBuddy,
		ViewNGODashboard,
		ViewSentimentAnalysis,
		ViewStoryWall,
		ViewWellnessPrograms:
		return true
	default:
		return false
	}
}

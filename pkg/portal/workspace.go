// Package portal keeps one workspace of page view-models per logged-in session.
package portal

import (
	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/contacts"
	"github.com/artem13815/hr/portal/pkg/credits"
	"github.com/artem13815/hr/portal/pkg/interview"
	"github.com/artem13815/hr/portal/pkg/profile"
	"github.com/artem13815/hr/portal/pkg/repository/rest"
	"github.com/artem13815/hr/portal/pkg/talent"
	"github.com/artem13815/hr/portal/pkg/vacancy"
)

// Workspace is everything the portal remembers for one session. All backend
// calls made through it carry that session's bearer token.
type Workspace struct {
	Session auth.Session

	Guard    *auth.Guard
	Ledger   *credits.Ledger
	Costs    *credits.Costs
	Settings *credits.SettingsPage
	Contacts *contacts.Revealer
	Board    *interview.Board
	Talent   *talent.SearchPage
	Profile  *profile.Editor
	Jobs     vacancy.UseCase
}

// NewWorkspace binds api to sess and builds the view-models on top of it.
func NewWorkspace(api *apiclient.Client, sess auth.Session) *Workspace {
	bound := api.WithTokens(sess)

	creditsRepo := rest.NewCreditsRepository(bound)
	ledger := credits.NewLedger(creditsRepo)
	costs := credits.NewCosts(creditsRepo)
	revealer := contacts.NewRevealer(rest.NewContactsRepository(bound), ledger, costs)

	return &Workspace{
		Session:  sess,
		Guard:    auth.NewGuard(rest.NewAuthRepository(bound), ledger),
		Ledger:   ledger,
		Costs:    costs,
		Settings: credits.NewSettingsPage(creditsRepo, creditsRepo, costs),
		Contacts: revealer,
		Board:    interview.NewBoard(rest.NewInterviewRepository(bound), ledger, costs),
		Talent:   talent.NewSearchPage(rest.NewTalentRepository(bound), revealer, costs),
		Profile:  profile.NewEditor(rest.NewProfileRepository(bound)),
		Jobs:     vacancy.NewService(rest.NewVacancyRepository(bound)),
	}
}

// Reset drops all per-session state. Responses still in flight are discarded.
func (w *Workspace) Reset() {
	w.Talent.Reset()
	w.Contacts.Reset()
	w.Board.Reset()
	w.Profile.Reset()
}

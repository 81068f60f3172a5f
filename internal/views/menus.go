package views

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/model"
)

// ProfileMenu is the header's account menu.
type ProfileMenu struct {
	page
	client *api.Client
	log    logging.Logger

	profile model.Profile
}

// NewProfileMenu creates an unloaded profile menu.
func NewProfileMenu(client *api.Client, log logging.Logger) *ProfileMenu {
	return &ProfileMenu{client: client, log: logging.OrNoOp(log)}
}

// Load fetches the profile. On failure the menu shows no name.
func (p *ProfileMenu) Load(ctx context.Context) error {
	profile, err := p.client.Profile(ctx)
	if fetchFailed(err) {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = nil
	p.profile = model.Profile{}
	if err != nil {
		p.log.Error(ctx, "fetch profile", "error", err)
		p.notices = append(p.notices, "Could not load your profile.")
	} else {
		p.profile = profile
	}
	p.loaded = true
	return nil
}

// Profile returns the loaded profile.
func (p *ProfileMenu) Profile() model.Profile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profile
}

// Initials returns the avatar initials.
func (p *ProfileMenu) Initials() string {
	return p.Profile().Initials()
}

// Notifications is the header's notification menu. There is no notification
// feed yet, so it is always empty.
type Notifications struct{}

// Count is the number of unread notifications.
func (Notifications) Count() int { return 0 }

// Badge is the unread badge text.
func (n Notifications) Badge() string { return fmt.Sprintf("%d new", n.Count()) }

// EmptyText is shown when there is nothing to list.
func (Notifications) EmptyText() string { return "No notifications yet" }

/*
Package rostersdk provides a client SDK for the roster organization
membership service.

# Client vs Session

  - Client: public endpoints (health, invitation lookup, registration) and sign-in
  - Session: authenticated operations on organizations, members and invitations

Sign in to get a Session:

	client := rostersdk.NewClient("https://roster.example.com")
	session, err := client.Login(ctx, "ada@example.com", password)

	org, err := session.CreateOrganization(ctx, "Acme")
	inv, err := session.CreateInvitation(ctx, org.Organization.ID, rostersdk.CreateInvitationRequest{
		Email: "bob@example.com",
		Role:  "editor",
	})

The invitee follows the emailed link. Without an account they register and
join in one call:

	out, err := client.RegisterAndAccept(ctx, rostersdk.RegisterRequest{
		Token:    token,
		Password: password,
	})

With an account they sign in and accept:

	res, err := bob.AcceptInvitation(ctx, token)

# Errors

Every unexpected status is returned as *APIError. Compare with the
predefined values:

	if errors.Is(err, rostersdk.ErrInvitationExpired) {
		// ask an admin to resend
	}

A registration that created the account but could not accept the
invitation matches ErrRegisteredNotAccepted and carries the new identity.

# Warnings

Successful invitation operations may carry soft warnings: "email_mismatch"
when an invitation is accepted by a different address, "notification_failed"
when the invitation email could not be queued.
*/
package rostersdk

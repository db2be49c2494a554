/*
Package heysdk is the Go client for the Hey Mumma account service, and also
holds the wire types and error bodies the server writes.

Create an SDKClient for public endpoints, then sign up or log in to get a
Session for the authenticated ones:

	client := heysdk.NewSDKClient("http://localhost:8080")

	session, err := client.Login(ctx, "a@x.com", "secret")
	if err != nil {
		var apiErr *heysdk.APIError
		if errors.As(err, &apiErr) && apiErr.Code == heysdk.ErrorCodeInvalidCredentials {
			// wrong email or password
		}
		return err
	}

	if !session.ProfileCompleted() {
		age, due := 30, "2026-03-01"
		_, err = session.UpdateProfile(ctx, heysdk.ProfileRequest{Age: &age, DueDate: &due})
	}

	progress, err := session.Pregnancy(ctx)

Sessions carry a single access token and do not refresh it; log in again
once ExpiresAt has passed. A Session is safe for concurrent use.
*/
package heysdk

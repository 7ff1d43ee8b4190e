/*
Package formsdk provides a client SDK and the wire types for the formulaire
registration intake service.

# Overview

The service accepts multipart registration forms and exposes a small admin
surface (listing, delete, stats and a spreadsheet export). Every JSON answer
carries a success flag and, on failure, a localized message:

	client := formsdk.NewSDKClient("http://localhost:3000")

	created, err := client.Register(ctx, formsdk.RegisterRequest{
		Nom:    "Alaoui",
		Prenom: "Yasmine",
		Email:  "yasmine@example.ma",
		// ...
		Photo: &formsdk.Upload{Filename: "me.png", ContentType: "image/png", Data: png},
	})

	regs, err := client.ListRegistrations(ctx)
	stats, err := client.GetStats(ctx)
	err = client.DeleteRegistration(ctx, created.ID)

# Errors

Failures returned by the service are *APIError values carrying the HTTP
status and the message the service sent:

	var apiErr *formsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		fmt.Println(apiErr.Message)
	}
*/
package formsdk

package gate

import (
	"github.com/a-h/templ"
	"github.com/medpriceai/medprice-web/views"
	"github.com/medpriceai/medprice-web/views/layout"
)

var features = []views.Feature{
	{Icon: "⚡", Title: "Lightning Fast", Body: "Process documents in seconds with our advanced AI engine."},
	{Icon: "🎯", Title: "99% Accuracy", Body: "Industry-leading accuracy in data extraction and classification."},
	{Icon: "🔒", Title: "Secure & Compliant", Body: "HIPAA compliant with enterprise-grade security."},
}

func (g *Gate) loadingPage() templ.Component {
	return views.Loading(views.LoadingPage{
		Meta:   layout.NewPageMeta(g.opts.SiteURL, LandingPath).Private(),
		Client: g.opts.Client,
	})
}

func (g *Gate) landingPage() templ.Component {
	return views.Landing(views.LandingPage{
		Meta:  layout.NewPageMeta(g.opts.SiteURL, LandingPath),
		Brand: layout.SiteName,
		Nav: []views.Link{
			{Label: "Login", Href: LoginPath, CTA: "login"},
			{Label: "Sign Up", Href: SignupPath, CTA: "signup", Primary: true},
		},
		Hero: views.Hero{
			Title: "Advanced AI-Powered Medical Price Extraction",
			Lead:  "Extract medical claims, prices, and provider information instantly with our state-of-the-art AI engine.",
			Actions: []views.Link{
				{Label: "Get Started Free", Href: SignupPath, CTA: "signup", Primary: true},
				{Label: "View Pricing", Href: PricingPath, CTA: "pricing"},
			},
		},
		Features: features,
	})
}

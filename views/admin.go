package views

import (
	"fmt"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func csrfField(token string) g.Node {
	return Input(Type("hidden"), Name("_csrf"), Value(token))
}

// AdminLogin is the login form for the admin area.
func AdminLogin(site Site, showError bool, csrfToken string) g.Node {
	return Layout(site, PageMeta{Title: "Admin | " + site.Name, NoIndex: true, NoFollow: true},
		Section(Class("admin-login"),
			H1(g.Text("تسجيل الدخول")),
			g.If(showError, P(Class("error"), g.Text("بيانات الدخول غير صحيحة"))),
			Form(Method("post"), Action("/admin/login"),
				csrfField(csrfToken),
				Label(For("email"), g.Text("البريد الإلكتروني")),
				Input(Type("email"), ID("email"), Name("email"), Required()),
				Label(For("password"), g.Text("كلمة المرور")),
				Input(Type("password"), ID("password"), Name("password"), Required()),
				Button(Type("submit"), g.Text("دخول")),
			),
		),
	)
}

// AdminDashboard lists every post, drafts included, with delete actions
// and one-shot flash messages from the previous action.
func AdminDashboard(site Site, posts []Post, images []Card, flashes []string, csrfToken string) g.Node {
	return Layout(site, PageMeta{Title: "Dashboard | " + site.Name, NoIndex: true, NoFollow: true},
		Section(Class("admin-dashboard"),
			Div(Class("admin-header"),
				H1(g.Text("لوحة التحكم")),
				Form(Method("post"), Action("/admin/logout"),
					csrfField(csrfToken),
					Button(Type("submit"), g.Text("خروج")),
				),
			),
			g.Group(g.Map(flashes, func(msg string) g.Node {
				return P(Class("flash"), g.Text(msg))
			})),
			H2(g.Text("المقالات")),
			Table(Class("post-table"),
				THead(Tr(
					Th(g.Text("العنوان")),
					Th(g.Text("الحالة")),
					Th(g.Text("المشاهدات")),
					Th(g.Text("التاريخ")),
					Th(g.Text("")),
				)),
				TBody(g.Group(g.Map(posts, func(p Post) g.Node {
					return Tr(
						Td(A(Href("/blog/"+p.Slug), g.Text(p.Title))),
						Td(Span(Class("status-"+p.Status), g.Text(p.Status))),
						Td(g.Text(fmt.Sprintf("%d", p.Views))),
						Td(g.Text(p.Date)),
						Td(Form(Method("post"), Action(fmt.Sprintf("/admin/post/%d/delete", p.ID)),
							csrfField(csrfToken),
							Button(Type("submit"), Class("danger"), g.Text("حذف")),
						)),
					)
				}))),
			),
			g.If(len(images) > 0,
				Section(Class("admin-images"),
					H2(g.Text("الصور المرفوعة")),
					Div(Class("grid"), g.Group(g.Map(images, cardNode))),
				),
			),
		),
	)
}
